package image

import (
	"context"
	"os"

	"github.com/lrn-oss/lrc/cmd"
	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/spf13/cobra"
)

// imageCmd represents the image command
var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage images of resources",
	Long: `The command image and its subcommands allow to add images to resources and to delete them.
The first image of a resource is its preview.`,
}

var imageAddCmd = &cobra.Command{
	Use:   "add <resource-id> <file> [--caption <caption>]",
	Short: "Add an image to a resource",
	Long:  `Add an image to a resource. The file must contain an image. The caption is limited to 200 characters.`,
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		id := cmd.ParseId(args[0], "resource")
		caption := c.Flag("caption").Value.String()

		err := cli.AddImage(context.Background(), cmd.ClientFromConfig(), id, args[1], caption)
		if err != nil {
			os.Exit(1)
		}
	},
}

var imageDeleteCmd = &cobra.Command{
	Use:   "delete <resource-id> <image-id>",
	Short: "Delete an image of a resource",
	Long:  `Delete an image of a resource`,
	Args:  cobra.ExactArgs(2),
	Run: func(c *cobra.Command, args []string) {
		resourceID := cmd.ParseId(args[0], "resource")
		imageID := cmd.ParseId(args[1], "image")

		err := cli.DeleteImage(context.Background(), cmd.ClientFromConfig(), resourceID, imageID)
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	cmd.RootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageAddCmd)
	imageAddCmd.Flags().StringP("caption", "c", "", "caption of the image")
	imageCmd.AddCommand(imageDeleteCmd)
}
