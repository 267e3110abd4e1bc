package commands

import (
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/dyluth/perch/pkg/event"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer goroutine and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func mustEvent(t *testing.T, raw string) *event.Event {
	t.Helper()
	var ev event.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	return &ev
}
