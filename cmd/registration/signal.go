package main

import (
	"os"
	"os/signal"
	"syscall"

	registration "go.convislabs.com/registration"
	"go.convislabs.com/registration/core"
	"go.uber.org/zap"
)

// exitProcessFromSignal exits the process from a system signal.
func exitProcessFromSignal(sigName string) {
	ctx := registration.Context()
	logger := ctx.Logger().With(zap.String("signal", sigName))
	exitProcess(logger)
}

func exitProcess(logger *zap.Logger) {
	registration.Shutdown(registration.ActiveApp(), logger)
}

func trapSignals() {
	ctx := registration.Context()
	logger := ctx.Logger()
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGINT)

		for sig := range sigchan {
			switch sig {
			case syscall.SIGQUIT:
				logger.Info("quitting process immediately", zap.String("signal", "SIGQUIT"))
				os.Exit(core.ExitCodeForceQuit)

			case syscall.SIGTERM:
				logger.Info("shutting down, then terminating", zap.String("signal", "SIGTERM"))
				exitProcessFromSignal("SIGTERM")

			case syscall.SIGINT:
				logger.Info("shutting down, then terminating", zap.String("signal", "SIGINT"))
				exitProcessFromSignal("SIGINT")

			case syscall.SIGHUP:
				// ignore; this signal is sometimes sent outside of the user's control
				logger.Info("not implemented", zap.String("signal", "SIGHUP"))
			}
		}
	}()
}
