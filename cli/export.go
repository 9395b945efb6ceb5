package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mascanho/ruddit/exports"
)

func newExportCmd(a *app) *cobra.Command {
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored posts to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.postRepo()
			if err != nil {
				return err
			}
			posts, err := repo.AllPosts()
			if err != nil {
				return err
			}

			dir, err := exports.ResolveDir(a.cfg.Exports.Dir)
			if err != nil {
				return err
			}

			fmt.Printf("Exporting %d records...\n", len(posts))
			var path string
			if asCSV {
				path, err = exports.ExportPostsCSV(posts, dir)
			} else {
				path, err = exports.ExportPosts(posts, dir)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Successfully exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asCSV, "csv", false, "write CSV instead of XLSX")
	return cmd
}
