package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const RedactedText = "[REDACTED]"

const (
	FormatJSON = "json"
	FormatText = "text"
)

var sensitiveFields = map[string]struct{}{
	"user_id":                 {},
	"created_at":              {},
	"updated_at":              {},
	"secondary_curriculum_id": {},
	"notes":                   {},
	"entry_text":              {},
	"journal_text":            {},
	"payload":                 {},
	"device_id":               {},
}

type Config struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds a logger that never emits journal PII, whatever the caller puts
// into its fields.
func New(cfg Config) (*logrus.Logger, error) {
	level := logrus.InfoLevel
	if raw := strings.TrimSpace(cfg.Level); raw != "" {
		parsed, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", raw, err)
		}
		level = parsed
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	logger := logrus.New()
	logger.SetOutput(output)
	logger.SetLevel(level)

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	logger.AddHook(RedactionHook{})
	return logger, nil
}

// Discard returns a logger for tests and library defaults.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(RedactionHook{})
	return logger
}

func IsSensitiveField(name string) bool {
	_, ok := sensitiveFields[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ScrubSensitiveData returns a copy of value with sensitive keys redacted at
// any depth of nested maps and slices.
func ScrubSensitiveData(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		scrubbed := make(map[string]any, len(typed))
		for key, nested := range typed {
			if IsSensitiveField(key) {
				scrubbed[key] = RedactedText
				continue
			}
			scrubbed[key] = ScrubSensitiveData(nested)
		}
		return scrubbed
	case map[string]string:
		scrubbed := make(map[string]string, len(typed))
		for key, nested := range typed {
			if IsSensitiveField(key) {
				scrubbed[key] = RedactedText
				continue
			}
			scrubbed[key] = nested
		}
		return scrubbed
	case []any:
		scrubbed := make([]any, len(typed))
		for index, nested := range typed {
			scrubbed[index] = ScrubSensitiveData(nested)
		}
		return scrubbed
	case []map[string]any:
		scrubbed := make([]any, len(typed))
		for index, nested := range typed {
			scrubbed[index] = ScrubSensitiveData(nested)
		}
		return scrubbed
	default:
		return value
	}
}

type RedactionHook struct{}

func (RedactionHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (RedactionHook) Fire(entry *logrus.Entry) error {
	for key, value := range entry.Data {
		if IsSensitiveField(key) {
			entry.Data[key] = RedactedText
			continue
		}
		entry.Data[key] = ScrubSensitiveData(value)
	}
	return nil
}
