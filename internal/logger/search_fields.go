package logger

import (
	"strings"

	"github.com/spigell/lente/internal/utils"
	"go.uber.org/zap"
)

const (
	// FieldQuery is the structured log field key for the search query.
	FieldQuery = "query"
	// FieldSource is the structured log field key for the candidate source.
	FieldSource = "source"

	maxQueryLength = 80
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// SearchFields describes a search. Long queries are truncated.
func SearchFields(query, source string) []zap.Field {
	return StringFields(
		StringField{Key: FieldQuery, Value: utils.TruncateForLog(query, maxQueryLength)},
		StringField{Key: FieldSource, Value: source},
	)
}

// WithSearchFields attaches the search fields to the provided logger.
func WithSearchFields(logger *zap.Logger, query, source string) *zap.Logger {
	return WithFields(logger, SearchFields(query, source)...)
}
