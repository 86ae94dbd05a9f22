package cmd

import (
	"fmt"

	"github.com/bnema/social-accounts-cli/internal/application"
	"github.com/bnema/social-accounts-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newFriendCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friend",
		Short: "Send, answer and inspect friend requests",
	}

	cmd.AddCommand(
		newTransitionCmd(app, "request", "Send a friend request", (*application.Directory).SendFriendRequest),
		newTransitionCmd(app, "accept", "Accept a pending friend request", func(dir *application.Directory, self, peer domain.AccountID) (application.Result, error) {
			return dir.RespondToFriendRequest(self, peer, true)
		}),
		newTransitionCmd(app, "reject", "Reject a pending friend request", func(dir *application.Directory, self, peer domain.AccountID) (application.Result, error) {
			return dir.RespondToFriendRequest(self, peer, false)
		}),
		newTransitionCmd(app, "remove", "Remove a friend", (*application.Directory).RemoveFriend),
		newListCmd(app, "list", "List friends", (*application.Directory).Friends),
		newListCmd(app, "incoming", "List incoming friend requests", (*application.Directory).IncomingRequests),
		newListCmd(app, "outgoing", "List outgoing friend requests", (*application.Directory).OutgoingRequests),
		newFriendMutualCmd(app),
	)

	return cmd
}

func newFriendMutualCmd(app *app) *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "mutual PEER",
		Short: "List friends shared with another account",
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

			var (
				mutual []domain.AccountID
				names  map[domain.AccountID]string
			)
			err = app.workspace.Do(cmd.Context(), func(dir *application.Directory) error {
				mutual, err = dir.MutualFriends(self, peer)
				names = accountNames(dir)
				return err
			})
			if err != nil {
				return err
			}

			if len(mutual) == 0 {
				_, err = fmt.Fprintln(cmd.ErrOrStderr(), "No mutual friends")
				return err
			}
			return writeIDs(cmd.OutOrStdout(), mutual, names)
		},
	}
	addActorFlag(cmd, &actor)

	return cmd
}
