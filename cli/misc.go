package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mascanho/ruddit/config"
)

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored posts and comments",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Clearing database...")

			postRepo, err := a.postRepo()
			if err != nil {
				return err
			}
			if err := postRepo.ClearPosts(); err != nil {
				return err
			}

			commentRepo, err := a.commentRepo()
			if err != nil {
				return err
			}
			if err := commentRepo.ClearComments(); err != nil {
				return err
			}

			fmt.Println("Database cleared successfully.")
			return nil
		},
	}
}

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Open the settings file in the system editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.OpenInEditor()
		},
	}
}

func newOpenDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open-db",
		Short: "Open the folder holding the database and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.OpenAppDir()
		},
	}
}
