package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           Payment Service API
// @version         1.0
// @description     Course, lesson and instructor-fee payments with settlement ledger, refunds and gateway webhooks.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var Version = "dev"

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:     "payment-service",
		Short:   "Payment and enrollment settlement service",
		Version: Version,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional config file (yaml, json or toml)")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(migrateCmd(&configFile))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
