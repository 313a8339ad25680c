package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raysh454/segmentd/internal/app"
	"github.com/raysh454/segmentd/internal/logging"
)

func newServeCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket API",
		Long: `Start the classification API. Configuration is read from SEGMENTD_*
environment variables, optionally seeded from an env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if envFile != "" {
				files = append(files, envFile)
			}
			cfg, err := app.LoadConfig(files...)
			if err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("catalog"); path != "" {
				cfg.CatalogPath = path
			}

			logger := logging.NewLogger(os.Stdout, cfg.Level(), "segmentd")
			a, err := app.NewApplication(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default: .env if present)")
	return cmd
}
