package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const actorFlag = "as"

func parseAccountArg(raw string) (domain.AccountID, error) {
	id, err := domain.ParseAccountID(raw)
	if err != nil {
		return 0, fmt.Errorf("parse account %q: %w", strings.TrimSpace(raw), err)
	}
	return id, nil
}

func addActorFlag(cmd *cobra.Command, actor *string) {
	cmd.Flags().StringVar(actor, actorFlag, "", "Id of the account performing the action")
	_ = cmd.MarkFlagRequired(actorFlag)
}

// accountNames maps ids to display names for listing output.
func accountNames(dir *application.Directory) map[domain.AccountID]string {
	return lo.SliceToMap(dir.List(), func(account domain.Account) (domain.AccountID, string) {
		return account.ID, account.Profile.Name
	})
}

func writeIDs(w io.Writer, ids []domain.AccountID, names map[domain.AccountID]string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", id, names[id]); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(cmd *cobra.Command, result application.Result) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return err
}

type transitionRunner func(dir *application.Directory, self, peer domain.AccountID) (application.Result, error)

// newTransitionCmd builds a "VERB PEER --as ACTOR" command that prints the outcome message.
func newTransitionCmd(app *app, use string, short string, run transitionRunner) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   use + " PEER",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			self, err := parseAccountArg(actor)
			if err != nil {
				return err
			}
			peer, err := parseAccountArg(args[0])
			if err != nil {
				return err
			}

			var result application.Result
			err = app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				result, err = run(dir, self, peer)
				return err
			})
			if err != nil {
				return err
			}

			return writeResult(cmd, result)
		},
	}
	addActorFlag(cmd, &actor)

	return cmd
}

type listRunner func(dir *application.Directory, self domain.AccountID) ([]domain.AccountID, error)

// newListCmd builds a "list --as ACTOR" style command printing "ID\tNAME" lines.
func newListCmd(app *app, use string, short string, run listRunner) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			self, err := parseAccountArg(actor)
			if err != nil {
				return err
			}

			var (
				ids   []domain.AccountID
				names map[domain.AccountID]string
			)
			err = app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				ids, err = run(dir, self)
				names = accountNames(dir)
				return err
			})
			if err != nil {
				return err
			}

			return writeIDs(cmd.OutOrStdout(), ids, names)
		},
	}
	addActorFlag(cmd, &actor)

	return cmd
}
