package framework

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWithPrefix(t *testing.T) {
	target := &CapturingLogger{}
	logger := LoggerWithPrefix(target, "firefox: ")
	logger.Printf("launched version %s", "131.0")
	logger.Printf("100%% ready")

	output := target.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "firefox: launched version 131.0", output[0].Message)
	assert.Equal(t, "firefox: 100% ready", output[1].Message)
}

func TestLoggerWithPrefixOfNilTargetDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		LoggerWithPrefix(nil, "x: ").Printf("nothing")
	})
}

func TestCapturedOutputDump(t *testing.T) {
	target := &CapturingLogger{}
	target.Printf("first")
	target.Printf("second")

	var buf bytes.Buffer
	target.Output().Dump(&buf, "    DEBUG ")
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "    DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[1], "] second"))
}
