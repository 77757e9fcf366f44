package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/backoffice/pkg/ui"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <resource> <id>",
		Short: "Show every field of one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.resources.Find(cmd.Context(), a.client, args[0], args[1])
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(rec))
			for k := range rec {
				keys = append(keys, k)
			}
			slices.Sort(keys)

			out := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintln(out, ui.RenderKeyValue(k, rec.String(k)))
			}
			return nil
		},
	}
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <resource>",
		Short: "Print the number of records in a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.resources.Count(cmd.Context(), a.client, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.Itoa(n))
			return err
		},
	}
}
