package cmd

import (
	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/spf13/cobra"
)

func newBlockCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Block and unblock accounts",
	}

	cmd.AddCommand(
		newTransitionCmd(app, "add", "Block an account", (*application.Directory).BlockUser),
		newTransitionCmd(app, "remove", "Unblock an account", (*application.Directory).UnblockUser),
		newListCmd(app, "list", "List blocked accounts", (*application.Directory).BlockedUsers),
	)

	return cmd
}
