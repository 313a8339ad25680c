// Package cli implements the segmentd command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/raysh454/segmentd/internal/logging"
	"github.com/raysh454/segmentd/internal/segment"
)

// NewRootCommand builds the segmentd command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "segmentd",
		Short: "Visitor segment classification service",
		Long: `segmentd classifies anonymous visitor sessions into customer segments
from behavioural signals and recommends a content angle for each session.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("catalog", "", "segment catalog YAML (default: embedded catalog)")
	root.PersistentFlags().String("log-level", "warn", "log level for one-shot commands: debug, info, warn, error")

	root.AddCommand(newServeCommand())
	root.AddCommand(newClassifyCommand())
	root.AddCommand(newSegmentsCommand())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// commandLogger writes JSON log lines to stderr so stdout stays machine
// readable.
func commandLogger(cmd *cobra.Command, component string) (logging.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(cmd.ErrOrStderr(), level, component), nil
}

func loadCatalog(cmd *cobra.Command) (*segment.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	return segment.LoadCatalog(path)
}
