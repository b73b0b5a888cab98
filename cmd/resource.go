package cmd

import (
	"context"
	"os"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title> [--description <text>] [--tags <tags>] [--file <file>]",
	Short: "Add a resource to catalog",
	Long: `Add a resource to catalog. The title is required and limited to 200 characters.
Tags are given as a comma-separated list. --file attaches a file of any type.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := resourceFlags(cmd)
		flags.Title = args[0]
		flags.TitleSet = true
		file := cmd.Flag("file").Value.String()

		err := cli.Add(context.Background(), ClientFromConfig(), flags, file)
		if err != nil {
			os.Exit(1)
		}
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> [--title <title>] [--description <text>] [--tags <tags>] [--file <file> | --clear-file]",
	Short: "Update a resource",
	Long: `Update a resource. Only the fields given as flags are changed. An empty --description or --tags clears the field.
--file replaces the attached file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ParseId(args[0], "resource")
		flags := resourceFlags(cmd)
		file := cmd.Flag("file").Value.String()
		clearFile, _ := cmd.Flags().GetBool("clear-file")

		err := cli.Update(context.Background(), ClientFromConfig(), id, flags, file, clearFile)
		if err != nil {
			os.Exit(1)
		}
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a resource",
	Long:  `Delete a resource together with its file and images.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ParseId(args[0], "resource")
		err := cli.Delete(context.Background(), ClientFromConfig(), id)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("description", "d", "", "description of the resource")
	addCmd.Flags().StringP("tags", "t", "", "comma-separated tags of the resource")
	addCmd.Flags().StringP("file", "f", "", "name of a file to attach")

	RootCmd.AddCommand(updateCmd)
	updateCmd.Flags().String("title", "", "new title of the resource")
	updateCmd.Flags().StringP("description", "d", "", "new description of the resource")
	updateCmd.Flags().StringP("tags", "t", "", "new comma-separated tags of the resource")
	updateCmd.Flags().StringP("file", "f", "", "name of a file replacing the attached file")
	updateCmd.Flags().Bool("clear-file", false, "remove the attached file")
	updateCmd.MarkFlagsMutuallyExclusive("file", "clear-file")

	RootCmd.AddCommand(deleteCmd)
}

func resourceFlags(cmd *cobra.Command) cli.ResourceFlags {
	var f cli.ResourceFlags
	if fl := cmd.Flags().Lookup("title"); fl != nil {
		f.Title, f.TitleSet = fl.Value.String(), fl.Changed
	}
	if fl := cmd.Flags().Lookup("description"); fl != nil {
		f.Description, f.DescriptionSet = fl.Value.String(), fl.Changed
	}
	if fl := cmd.Flags().Lookup("tags"); fl != nil {
		f.Tags, f.TagsSet = fl.Value.String(), fl.Changed
	}
	return f
}
