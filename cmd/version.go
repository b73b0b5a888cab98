package cmd

import (
	"fmt"

	"github.com/lrn-oss/lrc/internal/config"
	"github.com/lrn-oss/lrc/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show lrc version information",
	Long:  `Show lrc version information`,
	Args:  cobra.MaximumNArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lrc version %s\n", utils.GetLrcVersion())
		cf := viper.ConfigFileUsed()
		if cf == "" {
			cf = fmt.Sprintf("No config.json file found in '%s'. Using default settings", config.ConfigDir)
		}
		fmt.Printf("Configuration file used: %s\n", cf)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
