// Package cli contains implementations of CLI commands. The command code is supposed to contain only logic specific
// to the CLI and delegate the handling of resources to the store in /internal/store.
// Commands in cli package should print results in human-readable format to stdout.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lrn-oss/lrc/internal/client"
	"github.com/lrn-oss/lrc/internal/config"
	"github.com/lrn-oss/lrc/internal/model"
	"github.com/lrn-oss/lrc/internal/store"
	"github.com/spf13/viper"
)

const (
	DefaultListSeparator = ","

	columnWidthName    = "LRC_COLUMNWIDTH"
	columnWidthDefault = 40
	httpCacheDir       = ".http-cache"
)

// Stderrf prints a message to os.Stderr, followed by newline
func Stderrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
	_, _ = fmt.Fprintln(os.Stderr)
}

type FilterFlags struct {
	Search string
	Tags   string
}

func (ff *FilterFlags) IsSet() bool {
	return ff.Search != "" || ff.Tags != ""
}

func CreateFilterParamsFromCLI(flags FilterFlags) model.FilterParams {
	params := model.FilterParams{
		Search: strings.TrimSpace(flags.Search),
	}
	if flags.Tags != "" {
		params.Tags = model.ParseTags(flags.Tags)
	}
	return params
}

// NewClient returns a client for the catalog API at the configured apiUrl
func NewClient() (*client.Client, error) {
	var opts []client.Option
	if viper.GetBool(config.KeyHttpCache) {
		opts = append(opts, client.WithCache(filepath.Join(config.ConfigDir, httpCacheDir)))
	}
	c, err := client.New(viper.GetString(config.KeyApiUrl), opts...)
	if err != nil {
		Stderrf("Could not create a client for %s: %v\ncheck config", viper.GetString(config.KeyApiUrl), err)
		return nil, err
	}
	return c, nil
}

// session is the store of a single command invocation. Errors set on the store are reported on stderr
type session struct {
	store    *store.Store
	notifier *store.Notifier
}

func newSession(api store.API) *session {
	s := store.New(api)
	n := store.NewNotifier(s, nil, store.DefaultNotifyDelay, func(msg string) {
		Stderrf("Error: %s", msg)
	}, func() {})
	return &session{store: s, notifier: n}
}

func (s *session) Close() {
	s.notifier.Close()
}

func openUpload(filename string) (*model.Upload, func(), error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		Stderrf("Could not open file %s: %v", filename, err)
		return nil, nil, err
	}
	return &model.Upload{
		Name:    filepath.Base(abs),
		Content: f,
	}, func() { _ = f.Close() }, nil
}

// elideString shortens value to colWidth characters, the last three of them being "..."
func elideString(value string, colWidth int) string {
	runes := []rune(value)
	if len(runes) < colWidth || colWidth < 4 {
		return value
	}
	return string(runes[:colWidth-3]) + "..."
}

func columnWidth() int {
	cw, err := strconv.Atoi(os.Getenv(columnWidthName))
	if err != nil {
		cw = columnWidthDefault
	}
	return cw
}
