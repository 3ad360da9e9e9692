// Command edl translates equipment description sources into the YAML
// artifacts consumed by the runtime.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Omarmeks89/edl-src/cli"
	"github.com/Omarmeks89/edl-src/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		// Translation failures carry their own attributes via LogValue.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
