package config

import "time"

type Config struct {
	HTTPHost         string        `envconfig:"HTTP_HOST" default:""`
	HTTPPort         string        `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	HTTPReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"30s"`
	HTTPWriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"60s"`
	HTTPIdleTimeout  time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	WorkerCount      int           `envconfig:"WORKER_COUNT" default:"4"`
	MaxBodyBytes     int64         `envconfig:"MAX_BODY_BYTES" default:"104857600"`
	MemoEnabled      bool          `envconfig:"MEMO_ENABLED" default:"true"`
	ExtractRoot      string        `envconfig:"EXTRACT_ROOT" default:"./extracted"`
}
