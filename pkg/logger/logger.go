// Package logger реализует printf-style логгер поверх zerolog.
// Все слои сервиса зависят только от узкого интерфейса Info/Warn/Error,
// объявленного на стороне потребителя.
package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger логгер сервиса с опциональной записью в файл
type Logger struct {
	zl   zerolog.Logger
	file *os.File
}

// New создает логгер. Если file пустой или "stdout" - пишем в stdout,
// иначе открываем файл на дозапись.
func New(file, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var (
		out *os.File
		own bool
	)
	switch file {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", file, err)
		}
		out = f
		own = true
	}

	zl := zerolog.New(out).Level(lvl).With().Timestamp().Logger()

	l := &Logger{zl: zl}
	if own {
		l.file = out
	}
	return l, nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("logger: unknown log level %q", level)
	}
}

// Debug пишет сообщение уровня debug
func (l *Logger) Debug(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Info пишет сообщение уровня info
func (l *Logger) Info(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Warn пишет сообщение уровня warn
func (l *Logger) Warn(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Error пишет сообщение уровня error
func (l *Logger) Error(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal пишет сообщение уровня fatal и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.zl.Fatal().Msgf(format, v...)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
