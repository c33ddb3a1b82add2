package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/tetratelabs/wazero/api"
)

// logMessageParams is the signature of the log_message host function:
// a single packed uint64 (ptr in the high bits, length in the low bits)
// pointing to a JSON-encoded LogMessage in guest memory.
var logMessageParams = []api.ValueType{api.ValueTypeI64}

// LogMessage is the wire format plugins use to forward log records to
// the host.
type LogMessage struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Attrs   []LogAttr `json:"attrs,omitempty"`
}

// LogAttr is one structured attribute of a LogMessage.
type LogAttr struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// unpackPtrLen splits a packed uint64 into a guest pointer and length.
func unpackPtrLen(packed uint64) (ptr, length uint32) {
	return uint32(packed >> 32), uint32(packed)
}

func (e *Executor) logMessageFunc() api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		msg, ok := e.readLogMessage(ctx, mod, stack[0])
		if !ok {
			return
		}

		level := parseLogLevel(msg.Level)
		attrs := convertLogAttrs(msg.Attrs)
		e.logger.LogAttrs(ctx, level, msg.Message, attrs...)
	}
}

// readLogMessage reads and unmarshals the log message from guest memory.
func (e *Executor) readLogMessage(ctx context.Context, mod api.Module, packed uint64) (*LogMessage, bool) {
	ptr, length := unpackPtrLen(packed)

	raw, ok := mod.Memory().Read(ptr, length)
	if !ok {
		e.logger.ErrorContext(ctx, "host: failed to read log message from guest memory")
		return nil, false
	}

	var msg LogMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		e.logger.ErrorContext(ctx, "host: failed to unmarshal log message", "error", err)
		return nil, false
	}

	return &msg, true
}

// parseLogLevel converts a string level to slog.Level.
func parseLogLevel(levelStr string) slog.Level {
	level := slog.LevelInfo
	_ = level.UnmarshalText([]byte(levelStr))
	return level
}

// convertLogAttrs converts wire attributes to slog.Attr values.
func convertLogAttrs(wireAttrs []LogAttr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(wireAttrs))
	for _, attr := range wireAttrs {
		attrs = append(attrs, convertSingleAttr(attr))
	}
	return attrs
}

func convertSingleAttr(attr LogAttr) slog.Attr {
	switch attr.Type {
	case "string":
		return slog.String(attr.Key, attr.Value)
	case "int64":
		if v, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
			return slog.Int64(attr.Key, v)
		}
	case "bool":
		if v, err := strconv.ParseBool(attr.Value); err == nil {
			return slog.Bool(attr.Key, v)
		}
	case "float64":
		if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
			return slog.Float64(attr.Key, v)
		}
	case "time":
		if v, err := time.Parse(time.RFC3339Nano, attr.Value); err == nil {
			return slog.Time(attr.Key, v)
		}
	case "error":
		return slog.Any(attr.Key, fmt.Errorf("%s", attr.Value))
	}
	return slog.Any(attr.Key, attr.Value)
}
