package utils

import (
	"io"
	"log"
	"os"
)

// LoggerConfig controls the application logger.
type LoggerConfig struct {
	// text or json
	Format string
	// defaults to os.Stdout
	Output io.Writer
	// ANSI colours for terminals
	EnableColors bool
}

// InitLogger builds the process-wide logger shared by the HTTP and store layers.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	prefix := "[StepUp Cloud] "

	if cfg.Format == "json" {
		// JSON lines carry their own fields; keep the prefix out of them.
		return log.New(cfg.Output, "", 0)
	}
	if cfg.EnableColors {
		prefix = cyan + prefix + ColorReset
	}
	return log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
}

const (
	ColorReset = "\033[0m"
	red        = "\033[31m"
	green      = "\033[32m"
	yellow     = "\033[33m"
	blue       = "\033[34m"
	cyan       = "\033[36m"
	white      = "\033[37m"
)

var methodColors = map[string]string{
	"GET":    blue,
	"POST":   yellow,
	"PUT":    cyan,
	"PATCH":  green,
	"DELETE": red,
}

// StatusColor picks the ANSI colour for an HTTP status class.
func StatusColor(status int) string {
	switch status / 100 {
	case 5:
		return red
	case 4:
		return yellow
	case 3:
		return cyan
	case 2:
		return green
	}
	return white
}

func MethodColor(method string) string {
	if color, ok := methodColors[method]; ok {
		return color
	}
	return white
}
