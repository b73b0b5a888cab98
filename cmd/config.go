package cmd

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/lrn-oss/lrc/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var settableKeys = []string{
	config.KeyApiUrl,
	config.KeyHttpCache,
	config.KeyLogLevel,
	config.KeyDataDir,
	config.KeyUrlContextRoot,
	config.KeyStorage,
	config.KeyS3Bucket,
	config.KeyS3Region,
	config.KeyS3Endpoint,
	config.KeyS3AccessKeyId,
	config.KeyS3SecretAccessKey,
	config.KeyCorsAllowedOrigins,
	config.KeyCorsAllowedHeaders,
	config.KeyCorsAllowCredentials,
	config.KeyCorsMaxAge,
}

var boolKeys = []string{config.KeyHttpCache, config.KeyCorsAllowCredentials}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change the configuration",
	Long: `Show and change the configuration stored in config.json.
When no subcommand is given, shows the effective value of each setting.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, k := range settableKeys {
			fmt.Printf("%s: %v\n", k, viper.Get(k))
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Set a configuration value",
	Long:      `Set a configuration value in config.json, leaving all other values untouched.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: settableKeys,
	Run: func(cmd *cobra.Command, args []string) {
		key, value := args[0], args[1]
		if !slices.Contains(settableKeys, key) {
			cli.Stderrf("Unknown configuration key %q", key)
			os.Exit(1)
		}
		var v any = value
		if slices.Contains(boolKeys, key) {
			b, err := strconv.ParseBool(value)
			if err != nil {
				cli.Stderrf("Value of %s must be true or false", key)
				os.Exit(1)
			}
			v = b
		}
		if err := config.Save(key, v); err != nil {
			cli.Stderrf("Could not save config: %v", err)
			os.Exit(1)
		}
	},
}

var configUnsetCmd = &cobra.Command{
	Use:       "unset <key>",
	Short:     "Remove a configuration value",
	Long:      `Remove a configuration value from config.json, restoring the default.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: settableKeys,
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Delete(args[0]); err != nil {
			cli.Stderrf("Could not save config: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
}
