// Package main is the entry point for the dex gRPC server and its CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dex-api/cmd/server/client"
	"github.com/KirkDiggler/dex-api/internal/config"
)

var (
	configFile string
	envFile    string

	v   = config.New()
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dex-api",
	Short: "Dex API gRPC Server",
	Long:  `Dex API serves species, evolution and move data and resolves single moves between two combatants.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFile(envFile); err != nil {
			return err
		}
		if configFile != "" {
			v.SetConfigFile(configFile)
		}

		loaded, err := config.Load(v)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./dex.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file loaded before config")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the CSV dataset (default embedded)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int64("seed", 0, "engine seed, 0 for crypto random")
	mustBind(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
	mustBind(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind(config.KeyEngineSeed, rootCmd.PersistentFlags().Lookup("seed"))

	rootCmd.AddCommand(serverCmd)

	client.Local = func(cmd *cobra.Command) (client.Backend, func(), error) {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return nil, nil, err
		}
		return a.handler, a.close, nil
	}
	for _, c := range client.Commands() {
		rootCmd.AddCommand(c)
	}
}
