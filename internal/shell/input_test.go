package shell

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_ReadsUntilEOF(t *testing.T) {
	r := newLineReader(strings.NewReader("chicago\nnone\n"))
	defer r.Close()

	for _, want := range []string{"chicago", "none"} {
		line, err := r.ReadLine(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}
	_, err := r.ReadLine(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReader_CloseReleasesGoroutine(t *testing.T) {
	r := newLineReader(strings.NewReader("chicago\nnone\nno\nno\n"))

	ctx, cancel := context.WithCancel(context.Background())
	line, err := r.ReadLine(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chicago", line)

	cancel()
	_, err = r.ReadLine(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The goroutine is now waiting to hand over "none".
	r.Close()
	select {
	case <-r.finished:
	case <-time.After(5 * time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
	r.Close()
}

func TestShell_RunStopsReader(t *testing.T) {
	h := newHarness(t, lines("chicago", "none", "no", "no", "extra", "lines"))
	require.NoError(t, h.shell.Run(context.Background()))

	select {
	case <-h.shell.input.finished:
	case <-time.After(5 * time.Second):
		t.Fatal("reader goroutine still running after Run returned")
	}
}
