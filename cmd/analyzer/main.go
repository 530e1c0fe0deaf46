// Command analyzer evaluates option strategy payoffs from the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"options-analyzer/internal/cli"
	"options-analyzer/internal/config"
	"options-analyzer/internal/logging"
)

func main() {
	cfg, err := config.Load(configDirFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logging.DefaultLogConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.File = cfg.Log.File
	if cfg.Log.FilePath != "" {
		logCfg.FilePath = cfg.Log.FilePath
	}
	logCfg.MaxSize = cfg.Log.MaxSize
	logCfg.MaxBackups = cfg.Log.MaxBackups
	logCfg.MaxAge = cfg.Log.MaxAge
	logger := logging.NewLoggerWithConfig(logCfg)

	if err := cli.NewRootCmd(cfg, logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configDirFromArgs finds --config before cobra parses anything, since the
// config decides how the command tree is built.
func configDirFromArgs(args []string) string {
	fs := pflag.NewFlagSet("analyzer", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	dir := fs.String("config", "", "")
	_ = fs.Parse(args)
	return *dir
}
