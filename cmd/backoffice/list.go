package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/backoffice/pkg/pagination"
	"github.com/JaimeStill/backoffice/pkg/ui"
)

type listOptions struct {
	search   string
	sort     string
	desc     bool
	page     int
	pageSize int
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list <resource>",
		Aliases: []string{"ls"},
		Short:   "Show one page of a collection",
		Long: `Show one page of a collection, filtered and sorted locally.

Examples:
  backoffice list blogs
  backoffice list blogs --search launch --sort title
  backoffice list careers --sort created_at --desc --page 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.search, "search", "s", "", "case-insensitive text filter")
	flags.StringVar(&opts.sort, "sort", "", "sort field")
	flags.BoolVar(&opts.desc, "desc", false, "sort descending")
	flags.IntVarP(&opts.page, "page", "p", 1, "page number")
	flags.IntVar(&opts.pageSize, "page-size", 0, "rows per page (default: the resource's page size)")

	return cmd
}

func (a *app) runList(cmd *cobra.Command, name string, opts *listOptions) error {
	def, err := a.resources.Definition(name)
	if err != nil {
		return err
	}

	req := pagination.PageRequest{Page: opts.page, PageSize: opts.pageSize}
	if opts.search != "" {
		req.Search = &opts.search
	}
	if opts.sort != "" {
		req.Sort = []pagination.SortField{{Field: opts.sort, Descending: opts.desc}}
	}

	view, err := a.resources.List(cmd.Context(), a.client, name, req)
	if err != nil {
		return err
	}

	headers := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		headers[i] = strings.ToUpper(c)
	}
	tbl := ui.NewTable(headers...)
	for _, rec := range view.Rows {
		cells := make([]string, len(def.Columns))
		for i, c := range def.Columns {
			cells[i] = rec.String(c)
		}
		tbl.AddRow(cells...)
	}

	out := cmd.OutOrStdout()
	if len(view.Rows) == 0 {
		fmt.Fprintln(out, ui.FormatMuted("no records"))
	} else {
		fmt.Fprint(out, tbl.Render())
	}

	footer := fmt.Sprintf("page %d of %d · %d records", view.Page, max(view.TotalPages, 1), view.TotalCount)
	if view.Sort.Field != "" {
		footer += fmt.Sprintf(" · sorted by %s %s", view.Sort.Field, view.Sort.Direction)
	}
	_, err = fmt.Fprintln(out, ui.FormatMuted(footer))
	return err
}
