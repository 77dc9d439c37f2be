package main

import (
	"context"
	"os"

	"mshell/internal/transports/cli"
	"mshell/pkg/logger"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	lg := logger.New("", os.Stderr)

	root := cli.New(buildVersion())
	if err := root.ExecuteContext(context.Background()); err != nil {
		lg.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func buildVersion() string {
	v := version
	if commit != "" {
		v += " (" + commit + ")"
	}
	if date != "" {
		v += " " + date
	}
	return v
}
