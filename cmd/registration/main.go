package main

import (
	"os"

	registration "go.convislabs.com/registration"
	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.NewManager()
	if err != nil {
		core.NewLogger(nil).Fatal("Failed to load config", zap.Error(err))
	}

	logger := core.NewLogger(cfg)

	err = cfg.Init()
	if err != nil {
		logger.Fatal("Failed to initialize config", zap.Error(err))
	}

	logger.SetLevelFromConfig()

	ctx, err := core.NewContext(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create context", zap.Error(err))
	}

	registration.NewActiveApp(ctx)

	err = registration.Init()
	if err != nil {
		logger.Error("Failed to initialize registration app", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	err = registration.Start()
	if err != nil {
		logger.Error("Failed to start registration app", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}

	trapSignals()

	err = registration.Serve()
	if err != nil {
		logger.Error("Failed to serve registration app", zap.Error(err))
		os.Exit(core.ExitCodeFailedStartup)
	}
}
