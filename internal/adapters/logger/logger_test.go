package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/internal/adapters/logger"
	"go.trai.ch/cxxgraph/internal/core/domain"
	"go.trai.ch/zerr"
)

func newLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	buf := &bytes.Buffer{}
	l := logger.New()
	l.SetOutput(buf)
	return l, buf
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newLogger(t)

	l.Debug("hidden")
	l.Info("scanned 3 files")
	l.Warn("codescan: cannot find header a.hpp (/src/main.cpp)")

	assert.Equal(t, "scanned 3 files\n! codescan: cannot find header a.hpp (/src/main.cpp)\n", buf.String())

	buf.Reset()
	l.SetVerbose(true)
	l.Debug("visible")
	assert.Equal(t, "○ visible\n", buf.String())

	buf.Reset()
	l.SetVerbose(false)
	l.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_Error_Chain(t *testing.T) {
	l, buf := newLogger(t)

	cause := zerr.With(errors.Join(domain.ErrFileReadFailed, errors.New("permission denied")), "path", "/src/a.cpp")
	err := zerr.With(zerr.Wrap(cause, "scan failed"), "root", "/src")

	l.Error(err)

	want := "✗ Error: scan failed\n" +
		"       root: /src\n" +
		"\n" +
		"  Caused by:\n" +
		"    → failed to read file\n" +
		"        path: /src/a.cpp\n" +
		"    → permission denied\n"
	assert.Equal(t, want, buf.String())
}

func TestLogger_Error_Nil(t *testing.T) {
	l, buf := newLogger(t)
	l.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	l, buf := newLogger(t)
	l.SetJSON(true)

	l.Info("scan complete")
	l.Error(zerr.Wrap(domain.ErrScanRootNotFound, "scan failed"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "scan complete", info["msg"])

	var failure map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "scan failed: scan root not found", failure["error"])

	buf.Reset()
	l.SetJSON(false)
	l.Info("pretty again")
	assert.Equal(t, "pretty again\n", buf.String())
}

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []logger.ErrorEntry
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []logger.ErrorEntry{{Message: "boom", Metadata: map[string]any{}}},
		},
		{
			name: "wrapped sentinel",
			err:  zerr.With(zerr.Wrap(domain.ErrCycleDetected, "invalid task graph"), "cycle", "a -> b -> a"),
			want: []logger.ErrorEntry{
				{Message: "invalid task graph", Metadata: map[string]any{"cycle": "a -> b -> a"}},
				{Message: "cycle detected", Metadata: map[string]any{}},
			},
		},
		{
			name: "metadata on anonymous layer moves down",
			err:  zerr.With(errors.New("disk full"), "path", "/tmp/x"),
			want: []logger.ErrorEntry{{Message: "disk full", Metadata: map[string]any{"path": "/tmp/x"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries_Multiline(t *testing.T) {
	got := logger.FormatErrorEntries([]logger.ErrorEntry{
		{Message: "first\nsecond"},
		{Message: "cause\ndetail"},
	})

	assert.Equal(t, "Error: first\n       second\n\n  Caused by:\n    → cause\n      detail", got)
}
