package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/0xc0d3d00d/candleconv/internal/normalizer"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
)

type config struct {
	SourcePath   string     `env:"SOURCE_PATH" envDefault:"./data/temp_raw.csv"`
	DestPath     string     `env:"DEST_PATH" envDefault:"./data/BTCUSDT.csv"`
	PreviewLines int        `env:"PREVIEW_LINES" envDefault:"5"`
	LogLevel     slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
}

func main() {
	ctx := context.Background()

	level := new(slog.LevelVar)
	// set global logger with custom options
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		}),
	))

	cfg := config{}
	err := loadConfig(&cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	fs := afero.NewOsFs()
	registry := prometheus.NewRegistry()
	n, err := normalizer.New(fs, normalizer.WithRegisterer(registry))
	if err != nil {
		slog.ErrorContext(ctx, "failed to create normalizer", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "converting historical data", "source", cfg.SourcePath, "destination", cfg.DestPath)
	res, err := n.Convert(ctx, cfg.SourcePath, cfg.DestPath)
	logMetrics(ctx, registry)
	if err != nil {
		slog.ErrorContext(ctx, "conversion failed", "error", err)
		return
	}
	if res.Converted == 0 {
		slog.ErrorContext(ctx, "conversion failed", "error", "no rows converted")
		return
	}

	slog.InfoContext(ctx, "conversion successful", "rows", res.Converted, "destination", cfg.DestPath)

	lines, err := normalizer.Preview(fs, cfg.DestPath, cfg.PreviewLines)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read converted data", "error", err)
		return
	}
	fmt.Println("Sample converted data:")
	for _, line := range lines {
		fmt.Println(line)
	}
}

func logMetrics(ctx context.Context, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		slog.WarnContext(ctx, "failed to gather metrics", "error", err)
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{"metric", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			slog.DebugContext(ctx, "conversion metric", attrs...)
		}
	}
}

func loadConfig(config any) error {
	// Ignore error if .env is missing
	err := godotenv.Load()

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	// Parse for built-in types
	if err := env.Parse(config); err != nil {
		return err
	}

	return nil
}
