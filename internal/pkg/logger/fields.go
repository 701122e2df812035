package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field aliases zap.Field so callers log through this package without
// importing zap themselves.
type Field = zap.Field

// String carries a string value.
func String(key, val string) Field {
	return zap.String(key, val)
}

// Int carries an int value.
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Int64 carries an int64 value.
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

// Duration carries a time.Duration value.
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Any carries an arbitrary value.
func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

// Err carries an error under the standard "error" key.
func Err(err error) Field {
	return zap.Error(err)
}

// ErrorField is an alias for Err.
func ErrorField(err error) Field {
	return zap.Error(err)
}
