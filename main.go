/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tessera/engine"
	"github.com/spaghettifunk/tessera/engine/core"
	"github.com/spaghettifunk/tessera/engine/platform"
	"github.com/spaghettifunk/tessera/testbed"
)

func main() {
	configPath := flag.String("config", engine.DefaultConfigPath, "path to the TOML configuration")
	startup := flag.String("scene", "", "scene to open on startup")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	play := flag.Bool("play", false, "start in play mode instead of editing")
	flag.Parse()

	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		panic(err)
	}
	if *startup != "" {
		cfg.Scenes.Startup = *startup
	}
	if *logLevel != "" {
		cfg.Application.LogLevel = *logLevel
	}
	if *play {
		cfg.Application.EditorState = core.EditorStatePlay.String()
	}

	tb := testbed.NewTestGame(cfg)

	engine, err := engine.New(tb.Game, platform.NewGLFWBackend())
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// capture sigterm and other system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := engine.Run(ctx)
	if err := engine.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
