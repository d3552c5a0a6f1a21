// Package cli define los comandos de petclinic (serve, version).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	// RootCmd es el comando base sin subcomandos.
	RootCmd = &cobra.Command{
		Use:   "petclinic",
		Short: "pet clinic backend",
		Long: fmt.Sprintf(`petclinic (v%s)

API JSON de la clínica: owners, mascotas, visitas y veterinarios, sobre un
store en memoria o Postgres.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of petclinic",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("petclinic v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(serveCmd)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
