package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [<search-term> ...]",
	Short: "Search full text of resources in catalog using bleve search engine",
	Long: `Search title, description and tags of the resources in catalog using bleve search engine.
Results are ordered by relevance. --tag restricts the search to resources having all of the given tags.

The accepted search query syntax is described at https://blevesearch.com/docs/Query-String-Query/`,
	Args: cobra.MinimumNArgs(1),
	Run:  executeSearch,
}

func init() {
	RootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("tag", "t", "", "search only resources having all of the comma-separated tags")
}

func executeSearch(cmd *cobra.Command, args []string) {
	tags := cmd.Flag("tag").Value.String()

	searchQuery := strings.Join(args, " ")
	err := cli.Search(context.Background(), ClientFromConfig(), searchQuery, tags)
	if err != nil {
		cli.Stderrf("search failed")
		os.Exit(1)
	}
}
