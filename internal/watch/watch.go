// Package watch re-runs validation when corpus files change. Change events
// are debounced per document and handled strictly one at a time: each handler
// runs to completion before the next event is processed, so the shared
// breaker and metrics snapshot never see interleaved updates.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/docuvia/lexgate/internal/corpus"
)

// Handler processes one changed document. Handlers run sequentially.
type Handler func(ctx context.Context, documentID string)

// Watcher monitors the corpus language directories.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
}

// New creates a watcher over <corpusDir>/en and <corpusDir>/es.
func New(corpusDir string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, eris.Wrap(err, "watch: create watcher")
	}

	for _, lang := range []string{corpus.LangEnglish, corpus.LangSpanish} {
		dir := filepath.Join(corpusDir, lang)
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, eris.Wrapf(err, "watch: add %s", dir)
		}
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{fsw: fsw, debounce: debounce}, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run processes change events until ctx is cancelled. Bursts of events for
// the same document (editors often write twice) collapse into one handler
// call after the debounce window. The single loop guarantees run-to-completion
// per event.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			id, ok := documentID(event.Name)
			if !ok {
				continue
			}
			pending[id] = time.Now()
			zap.L().Debug("watch: change queued",
				zap.String("document_id", id),
				zap.String("path", event.Name),
			)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			zap.L().Error("watch: watcher error", zap.Error(err))

		case now := <-ticker.C:
			for id, last := range pending {
				if now.Sub(last) < w.debounce {
					continue
				}
				delete(pending, id)
				handle(ctx, id)
			}
		}
	}
}

// ContentTracker remembers the last handled content per document so a save
// that does not change the bytes is not re-processed. Comparison is exact:
// a one-character edit to a long template still counts as a change.
type ContentTracker struct {
	last map[string]string
}

func NewContentTracker() *ContentTracker {
	return &ContentTracker{last: make(map[string]string)}
}

// Update records content for the document and reports whether it differs
// from the previously recorded content, returning that previous content. The
// first sighting of a document is always a change.
func (t *ContentTracker) Update(documentID, content string) (prev string, changed bool) {
	prev, seen := t.last[documentID]
	t.last[documentID] = content
	return prev, !seen || prev != content
}

// documentID maps a changed file path to a corpus document id. Only template
// files count.
func documentID(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".md" && ext != ".txt" {
		return "", false
	}
	if strings.HasPrefix(base, ".") {
		return "", false
	}
	return strings.TrimSuffix(base, ext), true
}
