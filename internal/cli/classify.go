package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/raysh454/segmentd/internal/demo"
	"github.com/raysh454/segmentd/internal/segment"
)

func newClassifyCommand() *cobra.Command {
	var (
		file     string
		demoMode string
		seed     uint64
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one signal vector and print the result as JSON",
		Long: `Read a JSON object of signals from --file or stdin and print the
classification. The object may be the bare signal map or a request body
with a "signals" key. With --demo, a synthetic vector is generated instead.`,
		Example: `  segmentd classify --file session.json
  echo '{"signals": {...}}' | segmentd classify
  segmentd classify --demo heritage --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := commandLogger(cmd, "classify")
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}
			classifier, err := segment.NewClassifier(catalog, logger)
			if err != nil {
				return err
			}

			var signals segment.SignalVector
			if demoMode != "" {
				mode, err := demo.ParseMode(demoMode)
				if err != nil {
					return err
				}
				cfg := demo.DefaultConfig()
				cfg.Seed = seed
				signals, err = demo.NewGenerator(cfg).Signals(mode)
				if err != nil {
					return err
				}
			} else {
				in := cmd.InOrStdin()
				if file != "" && file != "-" {
					f, err := os.Open(file)
					if err != nil {
						return fmt.Errorf("opening %s: %w", file, err)
					}
					defer f.Close()
					in = f
				}
				signals, err = readSignals(in)
				if err != nil {
					return err
				}
			}

			result, err := classifier.Classify(signals)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the signals (default: stdin)")
	cmd.Flags().StringVar(&demoMode, "demo", "", "generate a demo vector: heritage, planner or random")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for --demo (0 seeds from the clock)")
	cmd.MarkFlagsMutuallyExclusive("file", "demo")
	return cmd
}

// readSignals decodes a signal object, unwrapping a {"signals": {...}}
// request body when present.
func readSignals(r io.Reader) (segment.SignalVector, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding signals: %w", err)
	}
	if inner, ok := raw["signals"].(map[string]any); ok {
		raw = inner
	}
	return segment.ParseSignals(raw)
}
