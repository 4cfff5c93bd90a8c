package reducectx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithNilWriterDiscardsLogs(t *testing.T) {
	rc := New(nil)
	assert.NotPanics(t, func() { rc.Logf("hello %d", 1) })
}

func TestLogfWritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	rc := New(&buf)
	rc.Logf("boom %d", 42)
	assert.Contains(t, buf.String(), "boom 42")
}

func TestTracefOnlyWritesWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	rc := New(&buf)

	rc.Tracef("quiet %d", 1)
	assert.Empty(t, buf.String(), "Tracef must be silent when Verbose is unset")

	rc.Verbose = true
	rc.Tracef("loud %d", 2)
	assert.Contains(t, buf.String(), "loud 2")
}

func TestNewDefaultsTimeout(t *testing.T) {
	rc := New(nil)
	assert.Equal(t, 360.0, rc.Timeout.Seconds())
}
