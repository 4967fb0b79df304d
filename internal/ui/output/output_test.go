package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/cxxgraph/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
}

func TestNewWithProfile(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewWithProfile(&buf, func() termenv.Profile { return termenv.ANSI })

	_, err := out.WriteString(out.String("hello").Foreground(termenv.ANSIRed).String())
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestNew_NilWriterFallsBack(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.NotNil(t, output.New(nil))
}
