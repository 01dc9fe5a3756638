package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pubkit/pubkit/internal/domain/folders"
)

func newOrganizeCmd(a *app) *cobra.Command {
	var (
		root   string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Group blog-, cuts- and shorts- folders into yy-dd-mm-<video_id>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := folders.Organizer{Root: root, DryRun: dryRun, Logf: a.logf()}.Run()
			if err != nil {
				return err
			}
			if dryRun {
				a.log.Info("dry run complete", "groups", len(rep.Groups))
				return nil
			}
			a.log.Info("organized", "groups", len(rep.Groups), "moved", rep.Moved, "failed", rep.Failed)
			if rep.Failed > 0 {
				return fmt.Errorf("%d folders could not be moved", rep.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "Directory to organize")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only print the plan")
	return cmd
}
