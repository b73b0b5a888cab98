package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lrn-oss/lrc/internal/app/cli"
	"github.com/lrn-oss/lrc/internal/app/http"
	"github.com/lrn-oss/lrc/internal/app/http/cors"
	"github.com/lrn-oss/lrc/internal/config"
	"github.com/lrn-oss/lrc/internal/storage"
	"github.com/lrn-oss/lrc/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the learning resources catalog over HTTP",
	Long: `Serve the learning resources catalog over HTTP. Resources are kept in a SQLite database in the data directory.
Uploaded files are stored in the data directory or, with --storage s3, in an S3 bucket.`,
	Args: cobra.NoArgs,
	Run:  serve,
}

func init() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "serve with this host name")
	serveCmd.Flags().String("port", "8000", "serve with this port")
	serveCmd.Flags().String("urlContextRoot", "", "define additional URL context root path to be considered in hypermedia links (env var LRC_URLCONTEXTROOT)")
	serveCmd.Flags().String("basePath", http.DefaultBasePath, "path under which the API is served")
	serveCmd.Flags().String("dataDir", "", "directory holding the database and uploaded files (env var LRC_DATADIR)")
	serveCmd.Flags().String("storage", "", fmt.Sprintf("where to store uploaded files. One of [%s, %s] (env var LRC_STORAGE)", config.StorageFile, config.StorageS3))
	serveCmd.Flags().StringSlice("corsAllowedOrigins", nil, "set comma-separated list for CORS allowed origins (env var LRC_CORSALLOWEDORIGINS)")
	serveCmd.Flags().StringSlice("corsAllowedHeaders", nil, "set comma-separated list for CORS allowed headers (env var LRC_CORSALLOWEDHEADERS)")
	serveCmd.Flags().Bool("corsAllowCredentials", false, "set CORS allow credentials (env var LRC_CORSALLOWCREDENTIALS)")
	serveCmd.Flags().Int("corsMaxAge", 0, "set how long result of CORS preflight request can be cached in seconds (default 0, max 600) (env var LRC_CORSMAXAGE)")

	_ = viper.BindPFlag(config.KeyUrlContextRoot, serveCmd.Flags().Lookup("urlContextRoot"))
	_ = viper.BindPFlag(config.KeyDataDir, serveCmd.Flags().Lookup("dataDir"))
	_ = viper.BindPFlag(config.KeyStorage, serveCmd.Flags().Lookup("storage"))
	_ = viper.BindPFlag(config.KeyCorsAllowedOrigins, serveCmd.Flags().Lookup("corsAllowedOrigins"))
	_ = viper.BindPFlag(config.KeyCorsAllowedHeaders, serveCmd.Flags().Lookup("corsAllowedHeaders"))
	_ = viper.BindPFlag(config.KeyCorsAllowCredentials, serveCmd.Flags().Lookup("corsAllowCredentials"))
	_ = viper.BindPFlag(config.KeyCorsMaxAge, serveCmd.Flags().Lookup("corsMaxAge"))
}

func serve(cmd *cobra.Command, args []string) {
	host := cmd.Flag("host").Value.String()
	port := cmd.Flag("port").Value.String()
	basePath := cmd.Flag("basePath").Value.String()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataDir, err := utils.ExpandHome(viper.GetString(config.KeyDataDir))
	if err != nil {
		cli.Stderrf("%v", err)
		os.Exit(1)
	}
	blobs, err := cli.NewBlobStore(ctx, viper.GetString(config.KeyStorage), dataDir, getS3Config())
	if err != nil {
		cli.Stderrf("Could not set up file storage: %v", err)
		os.Exit(1)
	}

	opts := cli.ServeOptions{
		DataDir:        dataDir,
		UrlContextRoot: viper.GetString(config.KeyUrlContextRoot),
		BasePath:       basePath,
		CORS:           getCORSOptions(),
		Blobs:          blobs,
	}
	err = cli.Serve(ctx, host, port, opts)
	if err != nil {
		cli.Stderrf("serve failed")
		os.Exit(1)
	}
}

func getS3Config() storage.S3Config {
	return storage.S3Config{
		Bucket:          viper.GetString(config.KeyS3Bucket),
		Region:          viper.GetString(config.KeyS3Region),
		Endpoint:        viper.GetString(config.KeyS3Endpoint),
		AccessKeyId:     viper.GetString(config.KeyS3AccessKeyId),
		SecretAccessKey: viper.GetString(config.KeyS3SecretAccessKey),
	}
}

func getCORSOptions() cors.CORSOptions {
	opts := cors.CORSOptions{}
	opts.AddAllowedOrigins(stringList(config.KeyCorsAllowedOrigins)...)
	opts.AddAllowedHeaders(stringList(config.KeyCorsAllowedHeaders)...)
	opts.AllowCredentials(viper.GetBool(config.KeyCorsAllowCredentials))
	opts.MaxAge(viper.GetInt(config.KeyCorsMaxAge))
	return opts
}

// stringList reads a list setting, which is a slice when given by flag and a comma-separated string when given by
// environment variable or config file
func stringList(key string) []string {
	var res []string
	for _, v := range viper.GetStringSlice(key) {
		res = append(res, utils.ParseAsList(v, cli.DefaultListSeparator, true)...)
	}
	return res
}
