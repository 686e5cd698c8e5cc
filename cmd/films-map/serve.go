package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"

	"github.com/ray1729/films-map/pkg/logger"
	"github.com/ray1729/films-map/pkg/server"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "Answer nearest-film queries over HTTP",
	ArgsUsage: "DATASET",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Listen on `ADDR` (default LISTEN_ADDR or :8000)",
		},
	},
	Action: serveAction,
}

func serveAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: films-map serve [--listen ADDR] DATASET")
	}
	if _, err := os.Stat(c.Args().First()); err != nil {
		return err
	}
	listenAddr := c.String("listen")
	if listenAddr == "" {
		listenAddr = cfg.ListenAddr
	}
	if strings.ToLower(cfg.LogLevel) != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, err := newGeocoder(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			logger.L().Warn("geocode_cache_close_error", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: server.NewHandler(c.Args().First(), g).Router(),
	}
	errc := make(chan error, 1)
	go func() {
		logger.L().Info("listening", "addr", listenAddr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
