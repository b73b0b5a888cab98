package cmd

import (
	"context"
	"os"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags used in catalog",
	Long: `List the distinct tags of all resources in catalog, sorted alphabetically.
With --server, the tags are aggregated by the catalog server instead of the client.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		server, _ := cmd.Flags().GetBool("server")
		c := ClientFromConfig()
		var tl cli.TagLister
		if server {
			tl = c
		}
		err := cli.Tags(context.Background(), c, tl)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(tagsCmd)
	tagsCmd.Flags().Bool("server", false, "let the server aggregate the tags")
}
