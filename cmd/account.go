package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}

	cmd.AddCommand(
		newAccountCreateCmd(app),
		newAccountListCmd(app),
		newAccountDescribeCmd(app),
		newAccountHistoryCmd(app),
	)

	return cmd
}

func newAccountCreateCmd(app *app) *cobra.Command {
	var (
		name           string
		login          string
		password       string
		status         string
		birthday       string
		graduationYear int
		friends        []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			newAccount := application.NewAccount{
				Name:     strings.TrimSpace(name),
				Login:    strings.TrimSpace(login),
				Password: password,
				Status:   status,
			}
			if newAccount.Name == "" {
				return fmt.Errorf("name must not be empty")
			}

			if birthday != "" {
				parsed, err := time.Parse(domain.BirthdayLayout, birthday)
				if err != nil {
					return fmt.Errorf("parse birthday %q: expected YYYY-MM-DD", birthday)
				}
				newAccount.Birthday = &parsed
			}
			if cmd.Flags().Changed("graduation-year") {
				newAccount.GraduationYear = lo.ToPtr(graduationYear)
			}
			for _, raw := range friends {
				id, err := parseAccountArg(raw)
				if err != nil {
					return err
				}
				newAccount.Friends = append(newAccount.Friends, id)
			}

			var id domain.AccountID
			err := app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				id = dir.Create(newAccount)
				return nil
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created account %s: %s\n", id, newAccount.Name)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&login, "login", "", "Login")
	cmd.Flags().StringVar(&password, "password", "", "Password (kept in the secret store)")
	cmd.Flags().StringVar(&status, "status", "", "Profile status")
	cmd.Flags().StringVar(&birthday, "birthday", "", "Birthday as YYYY-MM-DD")
	cmd.Flags().IntVar(&graduationYear, "graduation-year", 0, "Graduation year")
	cmd.Flags().StringSliceVar(&friends, "friend", nil, "Existing account to befriend on creation (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var accounts []domain.Account
			err := app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				accounts = dir.List()
				return nil
			})
			if err != nil {
				return err
			}

			for _, account := range accounts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", account.ID, account.Profile.Name, domain.FormatLastOnline(account.LastOnline))
			}

			return nil
		},
	}
}

func newAccountDescribeCmd(app *app) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "describe ID",
		Short: "Show the profile of an account",
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

			var text string
			err = app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				text, err = dir.Describe(self, peer)
				return err
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	addActorFlag(cmd, &actor)

	return cmd
}

func newAccountHistoryCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history ID",
		Short: "Show the activity history of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAccountArg(args[0])
			if err != nil {
				return err
			}

			var history []domain.HistoryEntry
			err = app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				history, err = dir.History(id)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(history)
			}

			for _, entry := range history {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", domain.FormatLastOnline(entry.At), entry.Label())
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print history as JSON")

	return cmd
}
