package cmd

import (
	"encoding/json"
	"fmt"

	summaryadapter "github.com/bnema/social-accounts-cli/internal/adapters/render/summary"
	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *app) *cobra.Command {
	var (
		actor        string
		asJSON       bool
		historyLimit int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show an overview of an account's relationships and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			self, err := parseAccountArg(actor)
			if err != nil {
				return err
			}

			var summary application.Summary
			err = app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				summary, err = dir.Summary(self)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			rendered, err := app.summaryRenderer(summary, summaryadapter.RenderOptions{
				Now:          app.now(),
				HistoryLimit: historyLimit,
			})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	addActorFlag(cmd, &actor)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().IntVar(&historyLimit, "history", 0, "Number of recent activity entries to show (-1 for all)")

	return cmd
}
