package main

import (
	"os"

	"Quiznator-Backend/src/cli"
)

// @title                       Quiznator API
// @version                     1.0
// @description                 Quiz authoring, cloning and answer statistics
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
