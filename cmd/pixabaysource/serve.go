package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moddengine/pixabay-assetsource/internal/config"
	"github.com/moddengine/pixabay-assetsource/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the asset source over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.cfg.Server.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if a.cfg.Cache.Driver == config.CacheDriverSQLite {
			go a.store.PurgeExpired(ctx, time.Hour)
		}

		opts := server.Options{
			Logger:     a.log,
			PrettyJSON: a.cfg.Debug.PrettyJSON,
			StaticDir:  a.cfg.Server.StaticDir,
		}
		if a.cfg.Server.Auth {
			opts.Users = a.store
		}

		err = server.New(a.source, opts).ListenAndServe(ctx, addr)
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8081)")
	rootCmd.AddCommand(serveCmd)
}
