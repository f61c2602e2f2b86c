package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/loomworks/bpm/cmd"
	"github.com/loomworks/bpm/constant"
)

func main() {
	bpm, err := cmd.New(afero.NewOsFs())
	if err != nil {
		fmt.Printf("Failed to initialize the bpm command %s.\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))
	ctx := slogcontext.NewCtx(context.Background(), logger)

	if err := bpm.ExecuteContext(ctx); err != nil {
		fmt.Printf("Unexpected error %s.\n", err)
		os.Exit(1)
	}
}

// logLevel reads the log level from the environment. Resolution tracing
// lives at debug and stays quiet unless asked for.
func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv(constant.LogLevelEnvVar))); err != nil {
		return slog.LevelWarn
	}
	return level
}
