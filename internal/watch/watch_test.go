package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		path string
		id   string
		ok   bool
	}{
		{"/corpus/en/lease-agreement.md", "lease-agreement", true},
		{"/corpus/es/will.txt", "will", true},
		{"/corpus/en/.lease-agreement.md.swp", "", false},
		{"/corpus/en/notes.json", "", false},
	}
	for _, tt := range tests {
		id, ok := documentID(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.id, id, tt.path)
	}
}

func TestRun_DebouncesAndSerializes(t *testing.T) {
	dir := t.TempDir()
	for _, lang := range []string{"en", "es"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, lang), 0o755))
	}

	w, err := New(dir, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var mu sync.Mutex
	var handled []string
	inHandler := false

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, id string) {
			mu.Lock()
			require.False(t, inHandler, "handlers must not interleave")
			inHandler = true
			handled = append(handled, id)
			inHandler = false
			mu.Unlock()
		})
	}()

	// Two rapid writes to the same document collapse into one event.
	path := filepath.Join(dir, "en", "nda.md")
	require.NoError(t, os.WriteFile(path, []byte("draft one"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("draft two"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) >= 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"nda"}, handled)
}

func TestContentTracker_Update(t *testing.T) {
	tr := NewContentTracker()

	prev, changed := tr.Update("lease-agreement", "rent is $500")
	assert.True(t, changed, "first sighting is a change")
	assert.Empty(t, prev)

	_, changed = tr.Update("lease-agreement", "rent is $500")
	assert.False(t, changed, "identical content is not a change")

	_, changed = tr.Update("will", "identical text elsewhere")
	assert.True(t, changed, "documents are tracked independently")
}

func TestContentTracker_DetectsSmallEditInLongTemplate(t *testing.T) {
	base := strings.Repeat("the tenant shall pay rent of $500 on the first. ", 8)
	edited := strings.Replace(base, "$500", "$900", 1)
	require.NotEqual(t, base, edited)

	tr := NewContentTracker()
	_, changed := tr.Update("lease-agreement", base)
	require.True(t, changed)

	prev, changed := tr.Update("lease-agreement", edited)
	assert.True(t, changed, "a one-character edit must be detected")
	assert.Equal(t, base, prev)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), 0)
	require.Error(t, err)
}
