package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hodzhakhov/archiver/internal/config"
	"github.com/hodzhakhov/archiver/internal/entrypoint"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var envFile string

	flagSet := pflag.NewFlagSet("archiver", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "путь к .env файлу с настройками")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("конфигурация загружена",
		zap.String("host", cfg.HTTPHost),
		zap.String("port", cfg.HTTPPort),
		zap.Int("workers", cfg.WorkerCount),
		zap.Bool("memo", cfg.MemoEnabled),
		zap.String("extract_root", cfg.ExtractRoot),
	)

	return entrypoint.Run(cfg, logger)
}

// loadConfig читает .env (если он есть) и затем переменные окружения.
func loadConfig(envFile string) (*config.Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("не удалось загрузить %s: %w", envFile, err)
	}

	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("не удалось разобрать конфигурацию: %w", err)
	}

	return &cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("некорректный LOG_LEVEL %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("не удалось создать логгер: %w", err)
	}
	return logger, nil
}
