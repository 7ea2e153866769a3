// Package cli wires configuration, logging and the provisioning services into cobra commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/vecprovision/internal/config"
)

var rootOpts struct {
	env        string
	dotenv     string
	configPath string
}

var rootCmd = &cobra.Command{
	Use:   "vecprovision",
	Short: "Reset the search and store collections in Weaviate",
	Long: `vecprovision drops and recreates two Weaviate collections, one for
knowledge base search and one for stored memories, each vectorized by the
OpenAI or Cohere text module and holding a single text property "content".

Running without a subcommand is the same as "vecprovision provision".
Existing collections with the configured names are deleted, with their data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return config.LoadDotEnv(rootOpts.dotenv)
	},
	RunE: runProvision,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootOpts.env, "env", "", "environment: local, dev, docker, prod (default: $ENV or local)")
	pf.StringVar(&rootOpts.dotenv, "dotenv", "", "dotenv file to load (default: .env when present)")
	pf.StringVar(&rootOpts.configPath, "config", "", "YAML config file (default: config/<env>.yaml when present)")

	addProvisionFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
