package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/srgg/sigdb/characteristics"
	"github.com/srgg/sigdb/codec"
	"github.com/srgg/sigdb/internal/assignednum"
	"github.com/srgg/sigdb/internal/registry"
	"github.com/srgg/sigdb/pkg/sigconfig"
)

// translator lazily configures and returns the process-wide Translator
// singleton, backed by the vendored assigned-numbers snapshot. The logger
// level honors the command's --log-level flag, falling back to the
// package default (info) when unset or unrecognized.
func translator(cmd *cobra.Command) *codec.Translator {
	log := ensureLogLevel(cmd)

	idx := registry.New(assignednum.New(log))
	lookup := characteristics.BuildLookup(idx, log)
	codec.Configure(idx, lookup, log)

	return codec.GetInstance()
}

// ensureLogLevel builds a logger from the root command's --log-level flag,
// defaulting to sigconfig's standard level when the flag is empty or holds
// a value logrus doesn't recognize.
func ensureLogLevel(cmd *cobra.Command) *logrus.Logger {
	cfg := sigconfig.DefaultConfig()

	if levelStr, _ := cmd.Flags().GetString("log-level"); levelStr != "" {
		if lvl, err := logrus.ParseLevel(levelStr); err == nil {
			cfg.LogLevel = lvl
		}
	}

	return cfg.NewLogger()
}
