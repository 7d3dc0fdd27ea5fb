// Command bbtree builds branch-and-bound search trees for 0/1 knapsack
// instances and renders them as text, DOT, JSON or (through graphviz) PDF,
// SVG and PNG. It can also serve the same over HTTP.
package main

import (
	"os"

	zlog "github.com/rs/zerolog/log"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		zlog.Error().Err(err).Msg("bbtree failed")
		os.Exit(1)
	}
}
