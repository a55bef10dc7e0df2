package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deep-core/internal/adapters/driven/auth"
	deephttp "github.com/custodia-labs/deep-core/internal/adapters/driving/http"
	"github.com/custodia-labs/deep-core/internal/core/ports/driving"
	"github.com/custodia-labs/deep-core/internal/core/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local control API.",
	Long: `Serves the search pipeline, indexed paths and provider selection over HTTP.
Requests must carry a bearer token from "deep token" unless auth.disabled is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if err := appCfg.RequireAuthSecret(); err != nil {
		return err
	}

	a, err := newApp(ctx, appCfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	var authService driving.AuthService
	if appCfg.Auth.Disabled {
		logger.Warn("control API authentication disabled")
	} else {
		authService = services.NewAuthService(auth.NewAdapter(appCfg.Auth.JWTSecret), appCfg.Auth.TokenTTL)
	}

	controller := a.newController(true)
	defer func() {
		controller.Close()
		controller.Wait()
	}()

	var store deephttp.Pinger
	if a.pinger != nil {
		store = a.pinger
	}

	server := deephttp.NewServer(deephttp.Config{
		Host:    appCfg.Server.Host,
		Port:    appCfg.Server.Port,
		Version: version,
		Logger:  logger,
	}, controller, a.indexing, authService, a.providers, store)

	return server.Start(ctx)
}
