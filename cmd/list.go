package cmd

import (
	"context"
	"os"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/spf13/cobra"
)

var filterFlags = cli.FilterFlags{}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources in catalog",
	Long: `List resources in catalog, newest first.
--search matches a case-insensitive substring of title or description. --tag keeps only resources carrying all of the given
comma-separated tags. Both can be combined to narrow down the result.`,
	Args: cobra.NoArgs,
	Run:  executeList,
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&filterFlags.Search, "search", "s", "", "list resources whose title or description contains the search term")
	listCmd.Flags().StringVarP(&filterFlags.Tags, "tag", "t", "", "list resources having all of the comma-separated tags")
}

func executeList(cmd *cobra.Command, args []string) {
	err := cli.List(context.Background(), ClientFromConfig(), filterFlags)
	if err != nil {
		os.Exit(1)
	}
}
