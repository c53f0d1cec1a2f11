package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriterSplitsLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	n, err := pw.Write([]byte("one\ntw"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "> one\n", out.String())

	_, err = pw.Write([]byte("o\nthree\n"))
	require.NoError(t, err)
	assert.Equal(t, "> one\n> two\n> three\n", out.String())
}

func TestPrefixWriterFlush(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter("> ", &out)

	require.NoError(t, pw.Flush())
	assert.Empty(t, out.String())

	_, err := pw.Write([]byte("partial"))
	require.NoError(t, err)
	assert.Empty(t, out.String())

	require.NoError(t, pw.Flush())
	assert.Equal(t, "> partial\n", out.String())
}

func TestPrefixWriterConcurrentLines(t *testing.T) {
	var out bytes.Buffer
	pw := NewPrefixWriter(Prefix, &out)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, _ = pw.Write([]byte("spell line\n"))
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 200)
	for _, l := range lines {
		assert.Equal(t, Prefix+"spell line", l)
	}
}

func TestNewLoggerText(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(Options{Name: "ff8-magic", Level: "info", Output: &out})

	logger.Debug("hidden")
	logger.Info("✅ Kernel loaded", "spells", 56)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], Prefix))
	assert.Contains(t, lines[0], "spells=56")
}

func TestNewLoggerJSON(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(Options{Name: "ff8-magic", Level: "debug", JSON: true, Output: &out})
	logger.Debug("export", "files", 2)

	assert.True(t, strings.HasPrefix(out.String(), "{"))
	assert.Contains(t, out.String(), `"files":2`)
}

func TestNewLoggerBadLevelFallsBackToWarn(t *testing.T) {
	logger := NewLogger(Options{Level: "loud", Output: &bytes.Buffer{}})
	assert.Equal(t, hclog.Warn, logger.GetLevel())
}

func TestResolveLevel(t *testing.T) {
	assert.Equal(t, "trace", ResolveLevel("trace", "info"))
	assert.Equal(t, "info", ResolveLevel("", "info"))
	assert.Equal(t, "warn", ResolveLevel("", ""))
}

func TestOpenOutput(t *testing.T) {
	w, closeFn, err := OpenOutput("")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "ff8.log")
	w, closeFn, err = OpenOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	_, _, err = OpenOutput(filepath.Join(t.TempDir(), "missing", "ff8.log"))
	assert.Error(t, err)
}
