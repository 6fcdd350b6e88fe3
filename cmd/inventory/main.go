package main

import (
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog/log"

	"github.com/websoft9/inventory/internal/commands"
	"github.com/websoft9/inventory/internal/config"
	"github.com/websoft9/inventory/internal/hooks"
	"github.com/websoft9/inventory/internal/routes"
	"github.com/websoft9/inventory/internal/worker"

	// Register inventory migrations, including the serial_int backfill
	_ "github.com/websoft9/inventory/internal/migrations"
)

func main() {
	cfg := config.Load()
	config.SetupLogger(cfg)

	app := pocketbase.New()

	// Asynq worker, shared across the app lifecycle
	w := worker.New(app, cfg)
	routes.SetAsynqClient(w.Client())

	app.RootCmd.AddCommand(commands.NewSerialsCommand(app))

	hooks.Register(app)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		routes.Register(se)
		w.Start()
		return se.Next()
	})

	app.OnTerminate().BindFunc(func(e *core.TerminateEvent) error {
		w.Shutdown()
		return e.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("inventory exited")
	}
}
