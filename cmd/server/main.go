package main

import (
	"bikeshare/internal/api"
	"bikeshare/internal/config"
	"bikeshare/internal/engine"
	"bikeshare/internal/render"
	"bikeshare/internal/views"
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	o := config.Defaults()
	cmd := &cli.Command{
		Name:  "bikeshare",
		Usage: "Bike sharing dashboard",
		Flags: config.Flags(&o),
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, &o)
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(ctx context.Context, o *config.Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	logger := config.Logger(o.LogLevel, o.LogFormat)
	slog.SetDefault(logger)

	format, _ := render.ParseFormat(o.ChartFormat)
	source := engine.FileSource{Path: o.DataPath}

	// 1. Check the dataset once up front so a bad path fails loudly at boot.
	// Requests still reload it on every render.
	if t, err := source.Load(ctx); err != nil {
		logger.Warn("Dataset not readable yet, requests will answer 503", "path", o.DataPath, "err", err)
	} else {
		bounds, _ := t.Bounds()
		logger.Info("Dataset ready", "path", o.DataPath, "rows", t.Len(),
			"from", bounds.Start.Format("2006-01-02"), "to", bounds.End.Format("2006-01-02"))
	}

	logo := o.LogoPath
	if logo != "" {
		if _, err := os.Stat(logo); err != nil {
			logger.Warn("Logo not found, sidebar image disabled", "path", logo)
			logo = ""
		}
	}

	// 2. Wire HTTP
	h := api.NewHandler(api.Config{
		Source:   source,
		Theme:    views.DefaultTheme(),
		Format:   format,
		Title:    o.Title,
		LogoPath: logo,
	})
	e := api.NewServer(h, logger)

	// 3. Serve until interrupted
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("Server ready", "listen", o.Listen)
		errc <- e.Start(o.Listen)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), o.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
