package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sa",
		Short:         "Social accounts CLI (sa): accounts, friends and blocks",
		Long:          "sa keeps a small social directory on disk: create accounts, exchange friend requests, block users and inspect each account's activity history.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.logger.SetOutput(cmd.ErrOrStderr())
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newFriendCmd(app),
		newBlockCmd(app),
		newSummaryCmd(app),
	)

	return rootCmd
}
