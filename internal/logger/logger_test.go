package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weeklybite/weeklybite/internal/errors"
)

func plainHandler(buf *bytes.Buffer, level slog.Level) *PrettyHandler {
	h := NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})
	h.color = false
	return h
}

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{name: "production uses json", environment: "production", wantJSON: true},
		{name: "development uses pretty", environment: "development"},
		{name: "staging uses pretty", environment: "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Environment: tt.environment, Writer: &buf, NoColor: true})
			logger.Info("hello")

			assert.Equal(t, tt.wantJSON, json.Valid(bytes.TrimSpace(buf.Bytes())))
		})
	}
}

func TestNew_NoColor(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "pretty", Writer: &buf, NoColor: true})

	logger.Info("plain", "k", "v")

	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "INF plain k=v")
}

func TestNew_ColorOnBuffer(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	logger := New(Config{Format: "pretty", Writer: &buf})

	logger.Info("colored")

	assert.Contains(t, buf.String(), colorGreen)
}

func TestNew_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	logger := New(Config{Format: "pretty", Writer: &buf})

	logger.Info("plain")

	assert.NotContains(t, buf.String(), "\033[")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))
	assert.True(t, h.Enabled(ctx, slog.LevelError))
}

func TestNewPrettyHandler_NilOptions(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	require.NotNil(t, h.opts)
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := plainHandler(&buf, slog.LevelDebug)

	r := slog.NewRecord(time.Date(2024, 1, 7, 9, 30, 15, 0, time.UTC), slog.LevelWarn, "meal slot dropped", 0)
	r.AddAttrs(slog.String("key", "2024-01-14-dinner"), slog.Int("count", 2))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "09:30:15 WRN meal slot dropped key=2024-01-14-dinner count=2\n", buf.String())
}

func TestPrettyHandler_QuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	slog.New(plainHandler(&buf, slog.LevelInfo)).Info("created", "name", "Chicken Curry")

	assert.Contains(t, buf.String(), `name="Chicken Curry"`)
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(plainHandler(&buf, slog.LevelInfo)).With("week", "2024-01-07")

	log.Info("saved", "meals", 3)

	assert.Contains(t, buf.String(), "week=2024-01-07 meals=3")
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(plainHandler(&buf, slog.LevelInfo)).WithGroup("store").WithGroup("badger")

	log.Info("opened", "path", "/tmp/db")

	assert.Contains(t, buf.String(), "store.badger.path=/tmp/db")
}

func TestPrettyHandler_WithGroup_Empty(t *testing.T) {
	h := plainHandler(&bytes.Buffer{}, slog.LevelInfo)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_AttrsBeforeGroupStayUnqualified(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(plainHandler(&buf, slog.LevelInfo)).With("cmd", "plan").WithGroup("slot")

	log.Info("added", "day", "2024-01-07")

	assert.Contains(t, buf.String(), "cmd=plan slot.day=2024-01-07")
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{AddSource: true})
	h.color = false

	slog.New(h).Info("with source")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		level     slog.Level
		wantStr   string
		wantColor string
	}{
		{slog.LevelDebug, "DBG", colorMagenta},
		{slog.LevelInfo, "INF", colorGreen},
		{slog.LevelWarn, "WRN", colorYellow},
		{slog.LevelError, "ERR", colorRed},
		{slog.LevelError + 4, "ERROR+4", colorGray},
	}

	for _, tt := range tests {
		t.Run(tt.wantStr, func(t *testing.T) {
			str, color := formatLevel(tt.level)
			assert.Equal(t, tt.wantStr, str)
			assert.Equal(t, tt.wantColor, color)
		})
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "plain", formatValue(slog.StringValue("plain")))
	assert.Equal(t, `"two words"`, formatValue(slog.StringValue("two words")))
	assert.Equal(t, "2024-01-07T00:00:00Z", formatValue(slog.TimeValue(ts)))
	assert.Equal(t, "1.5s", formatValue(slog.DurationValue(1500*time.Millisecond)))
	assert.Equal(t, "42", formatValue(slog.IntValue(42)))
	assert.Equal(t, "true", formatValue(slog.BoolValue(true)))
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.WithError(errors.NotFoundf("recipe %s not found", "7")).Info("lookup failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "recipe 7 not found", entry["error"])
	assert.Equal(t, "NOT_FOUND", entry["code"])
}

func TestLogger_WithError_Foreign(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.WithError(errors.New("disk full")).Info("failed")

	assert.Contains(t, buf.String(), `"code":"INTERNAL"`)
}

func TestLogger_WithError_Nil(t *testing.T) {
	logger := Discard()
	assert.Same(t, logger, logger.WithError(nil))
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	logger.WithField("week", "2024-01-07").Info("loaded")

	assert.Contains(t, buf.String(), `"week":"2024-01-07"`)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: "pretty", Writer: &buf, NoColor: true})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "warn message")
	assert.Contains(t, lines[1], "error message")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nowhere")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
