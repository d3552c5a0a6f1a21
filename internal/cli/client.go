package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"petclinic/internal/platform/httpclient"

	"github.com/spf13/cobra"
)

// Subcomandos cliente contra un servidor en ejecución.
var (
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check that a running server answers /health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			if err := c.Do(cmd.Context(), http.MethodGet, "/health", nil, nil, nil); err != nil {
				return err
			}
			cmd.Println("ok")
			return nil
		},
	}

	ownersCmd = &cobra.Command{
		Use:   "owners [lastName]",
		Short: "List owners whose last name contains the given text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			q := url.Values{}
			if len(args) == 1 {
				q.Set("lastName", args[0])
			}
			var out []map[string]any
			if err := c.Do(cmd.Context(), http.MethodGet, "/owners", q, nil, &out); err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}

	vetsCmd = &cobra.Command{
		Use:   "vets [lastName]",
		Short: "List vets with their specialties",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}
			q := url.Values{}
			if len(args) == 1 {
				q.Set("lastName", args[0])
			}
			var out []map[string]any
			if err := c.Do(cmd.Context(), http.MethodGet, "/vets", q, nil, &out); err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{healthCmd, ownersCmd, vetsCmd} {
		c.Flags().String("url", "http://localhost:8080", "base URL of the petclinic server")
		c.Flags().Duration("timeout", httpclient.DefaultTimeout, "request timeout")
		RootCmd.AddCommand(c)
	}
}

func newClient(cmd *cobra.Command) (*httpclient.Client, error) {
	base, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = time.Second
	}
	return httpclient.New(base, timeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
