package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "1500.0", want: "1500.0", wantOK: true},
		{in: "1.5kg", want: "1.5", wantOK: true},
		{in: "-0.25", want: "-0.25", wantOK: true},
		{in: ".5", want: ".5", wantOK: true},
		{in: "2e3x", want: "2e3", wantOK: true},
		{in: "abc", want: "", wantOK: false},
		{in: "", want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := LeadingNumber(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError("could not parse the handling file", ErrMalformedDocument)

	assert.True(t, errors.Is(err, ErrMalformedDocument))
	assert.Equal(t, "could not parse the handling file", UserMessage(err))
	assert.Contains(t, err.Error(), ErrMalformedDocument.Error())
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetupLoggerTo(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "json"))
	LogInfo("parsed handling document", Fields{"fields": 3})
	assert.Contains(t, buf.String(), `"fields":3`)

	assert.ErrorIs(t, SetupLoggerTo(&buf, slog.LevelInfo, "xml"), ErrInvalidConfig)
}

func TestLogLevels(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	require.NoError(t, SetupLoggerTo(&buf, slog.LevelInfo, "console"))

	LogDebug("hidden at info", Fields{"path": "a.meta"})
	assert.Empty(t, buf.String())

	LogError(errors.New("disk full"), "save failed", Fields{"id": "abc"})
	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, `error="disk full"`)
	assert.Contains(t, out, "id=abc")
}
