package cmd

import (
	"context"
	"os"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a resource",
	Long:  `Show all details of a resource, including its file and images.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ParseId(args[0], "resource")
		err := cli.Show(context.Background(), ClientFromConfig(), id)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}
