package pkg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedWriter_Write(t *testing.T) {
	console := &strings.Builder{}
	console.WriteString("boot: ")
	logFile := &strings.Builder{}

	cw := NewCombinedWriter(console, logFile)
	require.NotNil(t, cw)
	assert.Len(t, cw.Writers, 2)

	line1 := "ingest started"
	line2 := ", 3 entries accepted"
	n, err := cw.Write([]byte(line1))
	require.NoError(t, err)
	assert.Equal(t, len(line1)*len(cw.Writers), n)
	n, err = cw.Write([]byte(line2))
	require.NoError(t, err)
	assert.Equal(t, len(line2)*len(cw.Writers), n)

	assert.Equal(t, "boot: "+line1+line2, console.String())
	assert.Equal(t, line1+line2, logFile.String())
}

func TestCombinedWriter_Write_WithError(t *testing.T) {
	broken := &brokenWriter{}
	healthy := &strings.Builder{}

	cw := NewCombinedWriter(broken, healthy)

	line := "ingest started"
	n, err := cw.Write([]byte(line))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// the healthy writer still got the full line
	assert.Equal(t, len(line), n)
	assert.Equal(t, line, healthy.String())
}

type brokenWriter struct{}

func (bw *brokenWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("disk full")
}
