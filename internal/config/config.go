package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lrn-oss/lrc/internal/utils"
	"github.com/spf13/viper"
)

const (
	KeyLog                  = "log"
	KeyLogLevel             = "logLevel"
	KeyApiUrl               = "apiUrl"
	KeyHttpCache            = "httpCache"
	KeyDataDir              = "dataDir"
	KeyUrlContextRoot       = "urlContextRoot"
	KeyStorage              = "storage"
	KeyS3Bucket             = "s3Bucket"
	KeyS3Region             = "s3Region"
	KeyS3Endpoint           = "s3Endpoint"
	KeyS3AccessKeyId        = "s3AccessKeyId"
	KeyS3SecretAccessKey    = "s3SecretAccessKey"
	KeyCorsAllowedOrigins   = "corsAllowedOrigins"
	KeyCorsAllowedHeaders   = "corsAllowedHeaders"
	KeyCorsAllowCredentials = "corsAllowCredentials"
	KeyCorsMaxAge           = "corsMaxAge"
	EnvPrefix               = "lrc"
	LogLevelOff             = "off"

	StorageFile = "file"
	StorageS3   = "s3"

	DefaultApiUrl = "http://localhost:8000/api"

	configFileName = "config.json"
)

var HomeDir string
var DefaultConfigDir string
var ConfigDir string

func InitConfig() {
	var err error
	HomeDir, err = os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultConfigDir = filepath.Join(HomeDir, ".lrc")
}

func InitViper() {
	viper.SetDefault(KeyLog, false)
	viper.SetDefault(KeyApiUrl, DefaultApiUrl)
	viper.SetDefault(KeyHttpCache, false)
	viper.SetDefault(KeyDataDir, filepath.Join(DefaultConfigDir, "data"))
	viper.SetDefault(KeyStorage, StorageFile)

	viper.SetConfigType("json")
	viper.SetConfigName("config")
	viper.AddConfigPath(DefaultConfigDir)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			// Config file not found; do nothing and rely on defaults
		} else {
			panic("cannot read config: " + err.Error())
		}
	}
	ConfigDir = DefaultConfigDir
	if used := viper.ConfigFileUsed(); used != "" {
		ConfigDir = filepath.Dir(used)
	}

	// the environment variables have to match pattern "lrc_<viper variable>", lower or uppercase
	viper.SetEnvPrefix(EnvPrefix)

	_ = viper.BindEnv(KeyLog)                  // env variable name = LRC_LOG
	_ = viper.BindEnv(KeyLogLevel)             // env variable name = LRC_LOGLEVEL
	_ = viper.BindEnv(KeyApiUrl)               // env variable name = LRC_APIURL
	_ = viper.BindEnv(KeyHttpCache)            // env variable name = LRC_HTTPCACHE
	_ = viper.BindEnv(KeyDataDir)              // env variable name = LRC_DATADIR
	_ = viper.BindEnv(KeyUrlContextRoot)       // env variable name = LRC_URLCONTEXTROOT
	_ = viper.BindEnv(KeyStorage)              // env variable name = LRC_STORAGE
	_ = viper.BindEnv(KeyS3Bucket)             // env variable name = LRC_S3BUCKET
	_ = viper.BindEnv(KeyS3Region)             // env variable name = LRC_S3REGION
	_ = viper.BindEnv(KeyS3Endpoint)           // env variable name = LRC_S3ENDPOINT
	_ = viper.BindEnv(KeyS3AccessKeyId)        // env variable name = LRC_S3ACCESSKEYID
	_ = viper.BindEnv(KeyS3SecretAccessKey)    // env variable name = LRC_S3SECRETACCESSKEY
	_ = viper.BindEnv(KeyCorsAllowedOrigins)   // env variable name = LRC_CORSALLOWEDORIGINS
	_ = viper.BindEnv(KeyCorsAllowedHeaders)   // env variable name = LRC_CORSALLOWEDHEADERS
	_ = viper.BindEnv(KeyCorsAllowCredentials) // env variable name = LRC_CORSALLOWCREDENTIALS
	_ = viper.BindEnv(KeyCorsMaxAge)           // env variable name = LRC_CORSMAXAGE
}

// UseConfigDir makes viper read the configuration from config.json in dir instead of the default locations.
// A missing file is not an error.
func UseConfigDir(dir string) error {
	ConfigDir = dir
	viper.SetConfigFile(filepath.Join(dir, configFileName))
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot read config: %w", err)
	}
	return nil
}

// Save writes a single key-value pair to the config file, leaving all other keys in the file untouched.
// The value is also set in viper.
func Save(key string, value any) error {
	return modifyConfigFile(func(m map[string]any) {
		m[key] = value
	}, func() {
		viper.Set(key, value)
	})
}

// Delete removes a single key from the config file, leaving all other keys in the file untouched.
func Delete(key string) error {
	return modifyConfigFile(func(m map[string]any) {
		delete(m, key)
	}, func() {})
}

func modifyConfigFile(modify func(map[string]any), after func()) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(DefaultConfigDir, configFileName)
	}
	m := map[string]any{}
	raw, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &m); err != nil {
				return fmt.Errorf("cannot parse config file %s: %w", configFile, err)
			}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("cannot read config file %s: %w", configFile, err)
	}

	modify(m)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0770); err != nil {
		return err
	}
	if err := utils.AtomicWriteFile(configFile, data, 0660); err != nil {
		return err
	}
	after()
	return nil
}
