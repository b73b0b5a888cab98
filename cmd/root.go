package cmd

import (
	"os"

	"github.com/lrn-oss/lrc/internal"
	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/lrn-oss/lrc/internal/client"
	"github.com/lrn-oss/lrc/internal/config"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envConfigDir = "LRC_CONFIG"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "lrc",
	Short: "A CLI client and server for learning resources catalogs",
	Long: `lrc is a CLI client and server for bookmarking learning resources.
Resources have a title, an optional description, tags, an optional attached file and images.`,
	PersistentPreRun: preRunAll,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringP("loglevel", "l", "", "enable logging by setting a log level, one of [error, warn, info, debug, off]")
	RootCmd.PersistentFlags().String("config", "", "directory to read config.json from. Overrides the "+envConfigDir+" environment variable")
}

func preRunAll(cmd *cobra.Command, args []string) {
	configDir := cmd.Flag("config").Value.String()
	if configDir == "" {
		configDir = os.Getenv(envConfigDir)
	}
	if configDir != "" {
		if err := config.UseConfigDir(configDir); err != nil {
			cli.Stderrf("%v", err)
			os.Exit(1)
		}
	}

	if ll := cmd.Flag("loglevel").Value.String(); ll != "" {
		viper.Set(config.KeyLogLevel, ll)
	}
	if cmd.Name() == "serve" {
		internal.InitServerLogging()
	} else {
		internal.InitLogging()
	}
}

// ClientFromConfig returns the API client for the configured catalog. Exits the process on failure
func ClientFromConfig() *client.Client {
	c, err := cli.NewClient()
	if err != nil {
		os.Exit(1)
	}
	return c
}

// ParseId parses a resource or image id argument. Exits the process on failure
func ParseId(arg, what string) int64 {
	id, err := model.ParseId(arg)
	if err != nil {
		cli.Stderrf("Invalid %s id %q. Must be a positive integer", what, arg)
		os.Exit(1)
	}
	return id
}
