package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/backoffice/pkg/ui"
)

func newResourcesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "resources",
		Aliases: []string{"res"},
		Short:   "List the managed collections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl := ui.NewTable("NAME", "TITLE", "OPERATIONS", "PAGE SIZE", "SLOTS")
			for _, d := range a.resources.Catalog() {
				ops := make([]string, 0, 6)
				for _, op := range d.Operations() {
					ops = append(ops, string(op))
				}
				slots := make([]string, len(d.Slots))
				for i, s := range d.Slots {
					slots[i] = s.Name
				}
				tbl.AddRow(d.Name, d.Title, strings.Join(ops, ","), strconv.Itoa(d.PageSize), strings.Join(slots, ","))
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
			return err
		},
	}
}
