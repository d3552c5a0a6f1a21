// @title Pet Clinic API
// @version 1.0
// @description Owners, mascotas, visitas y veterinarios de la clínica.
// @BasePath /
package main

import "petclinic/internal/cli"

//go:generate swag init -d ../.. -g cmd/api/main.go -o ../../docs

func main() {
	cli.Execute()
}
