package observability

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatConsole LogFormat = "console"
)

type LoggingConfig struct {
	Level      LogLevel  `yaml:"level" mapstructure:"level"`
	Format     LogFormat `yaml:"format" mapstructure:"format"`
	Output     string    `yaml:"output" mapstructure:"output"`
	TimeFormat string    `yaml:"time_format" mapstructure:"time_format"`
}

type Logger struct {
	logger zerolog.Logger
	config LoggingConfig
}

func NewLogger(config LoggingConfig) (*Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(parseLogLevel(config.Level))

	var output io.Writer
	switch config.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		output = file
	}

	if config.Format == LogFormatConsole {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: getTimeFormat(config.TimeFormat),
		}
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Str("service", "gouji").
		Logger()

	return &Logger{
		logger: logger,
		config: config,
	}, nil
}

// NopLogger returns a logger that discards everything. Benchmarks and
// tests use it so logging stays off the measured path.
func NopLogger() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func (l *Logger) WithGame(gameID string) *zerolog.Logger {
	logger := l.logger.With().
		Str("game_id", gameID).
		Logger()
	return &logger
}

func (l *Logger) WithOperation(operation string) *zerolog.Logger {
	logger := l.logger.With().
		Str("operation", operation).
		Logger()
	return &logger
}

func (l *Logger) WithError(err error) *zerolog.Logger {
	logger := l.logger.With().
		Stack().
		Err(err).
		Logger()
	return &logger
}

func (l *Logger) Debug(msg string) { l.logger.Debug().Msg(msg) }
func (l *Logger) Info(msg string)  { l.logger.Info().Msg(msg) }
func (l *Logger) Warn(msg string)  { l.logger.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.logger.Error().Msg(msg) }

func (l *Logger) GetZerologLogger() zerolog.Logger {
	return l.logger
}

func parseLogLevel(level LogLevel) zerolog.Level {
	switch level {
	case LogLevelTrace:
		return zerolog.TraceLevel
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func getTimeFormat(format string) string {
	if format == "" {
		return time.RFC3339
	}
	return format
}

// LoggingMiddleware logs one line per completed HTTP request, escalating
// the level with the response status.
func (l *Logger) LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger := l.logger.With().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Logger()

			event := logger.Info()
			switch {
			case wrapped.statusCode >= 500:
				event = logger.Error()
			case wrapped.statusCode >= 400:
				event = logger.Warn()
			}

			event.
				Int("status_code", wrapped.statusCode).
				Int64("response_size", wrapped.size).
				Dur("duration", time.Since(start)).
				Msg("HTTP request completed")
		})
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
}

func (lrw *loggingResponseWriter) WriteHeader(statusCode int) {
	lrw.statusCode = statusCode
	lrw.ResponseWriter.WriteHeader(statusCode)
}

func (lrw *loggingResponseWriter) Write(data []byte) (int, error) {
	size, err := lrw.ResponseWriter.Write(data)
	lrw.size += int64(size)
	return size, err
}

func SetGlobalLogger(logger *Logger) {
	log.Logger = logger.logger
}
