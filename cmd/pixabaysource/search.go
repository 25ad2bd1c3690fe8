package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moddengine/pixabay-assetsource/pixabay"
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Print one page of search results (curated feed without a term)",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := cmd.Flags().GetInt("page")
		if err != nil {
			return err
		}
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		query := pixabay.NewAssetProxyQuery(a.source)
		query.SetSearchTerm(strings.Join(args, " "))
		query.SetLimit(limit)
		query.SetOffset(pixabay.OffsetForPage(page, limit))

		res, err := query.Execute(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLABEL\tSIZE\tDIMENSIONS\tIMPORTED\tORIGINAL")
		for res.Rewind(); res.Valid(); res.Next() {
			p, err := res.Current()
			if err != nil {
				return err
			}
			original := ""
			if o, ok := p.(*pixabay.AssetProxy); ok && o.OriginalURI() != nil {
				original = o.OriginalURI().String()
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%dx%d\t%t\t%s\n",
				p.Identifier(), p.Label(), p.FileSize(), p.WidthInPixels(), p.HeightInPixels(), p.IsImported(), original)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "page %d, %d total hits\n", page, res.Count())
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("page", 1, "result page")
	searchCmd.Flags().Int("limit", pixabay.DefaultQueryLimit, "results per page")
	rootCmd.AddCommand(searchCmd)
}
