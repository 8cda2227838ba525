// Command eurocalc is an interactive EUR/BGN payment calculator.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"eurocalc/internal/calculator"
	"eurocalc/internal/console"
	"eurocalc/pkg/config"
	"eurocalc/pkg/logger"
	"eurocalc/pkg/validator"
)

const serviceName = "eurocalc"

func main() {
	cfg := config.Load()

	if err := cfg.ValidateCore(); err != nil {
		logger.New(serviceName).Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log := newLogger(cfg.Log)
	profile := cfg.Profile()

	log.Info("Starting payment calculator", map[string]interface{}{
		"profile":   profile.Name,
		"primary":   profile.Primary.Code,
		"secondary": profile.Secondary.Code,
		"rate":      profile.DefaultRate.String(),
	})

	session := calculator.NewSession(profile, validator.New(), log)
	con := console.New(session, os.Stdout, log, cfg.Calculator.Color)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := con.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Error("Console stopped", map[string]interface{}{"error": err.Error()})
		stop()
		os.Exit(1)
	}

	log.Info("Payment calculator stopped", map[string]interface{}{
		"session_id": session.ID().String(),
		"payments":   len(session.Payments()),
	})
}

func newLogger(cfg config.LogConfig) logger.Logger {
	var w io.Writer
	switch cfg.Output {
	case "stdout":
		w = os.Stdout
	case "none":
		w = io.Discard
	default:
		w = os.Stderr
	}
	return logger.NewWithWriter(serviceName, w, cfg.Level)
}
