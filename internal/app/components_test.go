package app_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cxxgraph/internal/adapters/logger"
	"go.trai.ch/cxxgraph/internal/app"
	"go.trai.ch/cxxgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestComponents_ConfigureLogging(t *testing.T) {
	log := logger.New()
	var buf bytes.Buffer
	log.SetOutput(&buf)

	c := &app.Components{Logger: log}
	c.ConfigureLogging(app.LoggingOptions{JSON: true, Verbose: true})

	log.Debug("probe")
	assert.Contains(t, buf.String(), `"msg":"probe"`)
}

func TestComponents_ConfigureLogging_PlainLogger(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := &app.Components{Logger: mocks.NewMockLogger(ctrl)}

	assert.NotPanics(t, func() {
		c.ConfigureLogging(app.LoggingOptions{JSON: true})
	})
}

func TestComponents_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Close().Return(nil)

	require.NoError(t, (&app.Components{Telemetry: tel}).Close())
	require.NoError(t, (&app.Components{}).Close())
}
