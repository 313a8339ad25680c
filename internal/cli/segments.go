package cli

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/raysh454/segmentd/internal/segment"
)

func newSegmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "segments",
		Short: "List the segment catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Threshold", "Content Angle", "Key Signals"})
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(true)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetCenterSeparator("")
			table.SetColumnSeparator("")
			table.SetRowSeparator("")
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetTablePadding("\t")

			for _, s := range catalog.Segments() {
				keys := lo.Map(s.KeySignals, func(k segment.Signal, _ int) string { return string(k) })
				table.Append([]string{
					string(s.ID),
					s.Name,
					fmt.Sprintf("%.2f", s.ConfidenceThreshold()),
					string(segment.ContentAngleFor(s.ID)),
					strings.Join(keys, ", "),
				})
			}
			table.Render()
			return nil
		},
	}
}
