package main

import (
	"github.com/lrn-oss/lrc/cmd"
	_ "github.com/lrn-oss/lrc/cmd/image"
	"github.com/lrn-oss/lrc/internal"
	"github.com/lrn-oss/lrc/internal/config"
)

func init() {
	config.InitConfig()
	config.InitViper()
	internal.InitLogging()
}

func main() {
	cmd.Execute()
}
