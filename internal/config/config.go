package config

import (
	"bikeshare/internal/render"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

type Options struct {
	Listen          string
	DataPath        string
	LogoPath        string
	Title           string
	ChartFormat     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

func Defaults() Options {
	return Options{
		Listen:          ":8080",
		DataPath:        "Data/day_clean.csv",
		LogoPath:        "logo.jpg",
		Title:           "Bike Sharing Dashboard",
		ChartFormat:     string(render.SVG),
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownTimeout: 10 * time.Second,
	}
}

func Flags(o *Options) []cli.Flag {
	d := Defaults()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "listen",
			Usage:       "http address to listen to",
			Value:       d.Listen,
			Destination: &o.Listen,
			Sources:     cli.EnvVars("BIKESHARE_LISTEN"),
		},
		&cli.StringFlag{
			Name:        "data",
			Usage:       "path to the cleaned daily rentals csv",
			Value:       d.DataPath,
			Destination: &o.DataPath,
			Sources:     cli.EnvVars("BIKESHARE_DATA"),
		},
		&cli.StringFlag{
			Name:        "logo",
			Usage:       "image shown in the sidebar, empty to disable",
			Value:       d.LogoPath,
			Destination: &o.LogoPath,
			Sources:     cli.EnvVars("BIKESHARE_LOGO"),
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "dashboard header",
			Value:       d.Title,
			Destination: &o.Title,
			Sources:     cli.EnvVars("BIKESHARE_TITLE"),
		},
		&cli.StringFlag{
			Name:        "chart-format",
			Usage:       "chart image format: svg or png",
			Value:       d.ChartFormat,
			Destination: &o.ChartFormat,
			Sources:     cli.EnvVars("BIKESHARE_CHART_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "debug, info, warn or error",
			Value:       d.LogLevel,
			Destination: &o.LogLevel,
			Sources:     cli.EnvVars("BIKESHARE_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "text or json",
			Value:       d.LogFormat,
			Destination: &o.LogFormat,
			Sources:     cli.EnvVars("BIKESHARE_LOG_FORMAT"),
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "grace period for in-flight requests on shutdown",
			Value:       d.ShutdownTimeout,
			Destination: &o.ShutdownTimeout,
			Sources:     cli.EnvVars("BIKESHARE_SHUTDOWN_TIMEOUT"),
		},
	}
}

// Validate checks values the flag parser cannot.
func (o *Options) Validate() error {
	if o.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if o.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if _, err := render.ParseFormat(o.ChartFormat); err != nil {
		return err
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.LogLevel)); err != nil {
		return fmt.Errorf("unknown log level %q", o.LogLevel)
	}
	if o.LogFormat != "text" && o.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", o.LogFormat)
	}
	return nil
}

// Logger builds the process logger. level must have passed Validate; an
// unknown level falls back to info.
func Logger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
