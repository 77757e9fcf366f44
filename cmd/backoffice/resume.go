package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/backoffice/pkg/ui"
)

func newResumeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resume <id>",
		Short: "Download the resume attached to a job application",
		Example: "  backoffice resume 12\n" +
			"  backoffice resume 12 -o ./applicants/12.pdf",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := a.resources.Resume(cmd.Context(), a.client, "careers", args[0])
			if err != nil {
				return err
			}

			dest := output
			if dest == "" {
				dest = filepath.Base(blob.Name)
			}
			if err := os.WriteFile(dest, blob.Data, 0o644); err != nil {
				return fmt.Errorf("write resume: %w", err)
			}

			size := units.HumanSize(float64(len(blob.Data)))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ui.FormatMuted(fmt.Sprintf("saved %s (%s)", dest, size)))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default: the upstream file name)")
	return cmd
}
