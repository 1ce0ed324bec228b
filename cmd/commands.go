package main

import (
	"encoding/json"
	"fmt"

	"mediforge/cmd/bootstrap"
	"mediforge/config"
	"mediforge/internal/repository"
	"mediforge/pkg/validator"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mediforge",
		Short: "MediForge landing page and patient list server",
		Long: `MediForge serves the marketing landing page of the healthcare application
generator together with a live mock patient list.

Configuration is read from .env and the process environment
(APP_PORT, LOG_LEVEL, SESSION_STORE, REDIS_HOST, ...).`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newCatalogCmd(), newVersionCmd())
	return root
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run()
		},
	}

	cmd.Flags().String("port", "", "port to listen on (overrides APP_PORT)")
	cmd.Flags().String("log-level", "", "log level (overrides LOG_LEVEL)")
	cmd.Flags().String("session-store", "", "view session store: memory or redis (overrides SESSION_STORE)")
	viper.BindPFlag("APP_PORT", cmd.Flags().Lookup("port"))
	viper.BindPFlag("LOG_LEVEL", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("SESSION_STORE", cmd.Flags().Lookup("session-store"))

	return cmd
}

func newCatalogCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the segment and template catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := repository.NewEmbeddedCatalogRepository(validator.NewValidator())
			if err != nil {
				return err
			}

			out := struct {
				Segments           interface{} `json:"segments" yaml:"segments"`
				ComplianceFeatures interface{} `json:"compliance_features" yaml:"compliance_features"`
				Templates          interface{} `json:"templates" yaml:"templates"`
				Compliance         []string    `json:"compliance" yaml:"compliance"`
			}{
				Segments:           catalog.Segments(),
				ComplianceFeatures: catalog.ComplianceFeatures(),
				Templates:          catalog.Templates(),
				Compliance:         catalog.Compliance(),
			}

			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(out)
			default:
				return fmt.Errorf("unsupported format: %s (supported: json, yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.App.Name, cfg.App.Version)
			return nil
		},
	}
}
