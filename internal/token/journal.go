package token

import (
	"context"
	"errors"
	"sync"
)

type journalKey struct{ t *Token }

type journalEntry struct {
	tr      Transfer
	dropped bool
}

// journal lists the transfers applied through one checkpoint context. A nil
// *journal records nothing.
type journal struct {
	mu      sync.Mutex
	entries []journalEntry
}

func (j *journal) record(tr Transfer) int {
	if j == nil {
		return -1
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, journalEntry{tr: tr})
	return len(j.entries) - 1
}

func (j *journal) drop(i int) {
	if j == nil || i < 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[i].dropped = true
}

func journalFrom(ctx context.Context, t *Token) *journal {
	j, _ := ctx.Value(journalKey{t}).(*journal)
	return j
}

// Checkpoint returns a context that records every transfer made through it,
// and a function that reverts those transfers in reverse order. Transfers made
// with other contexts are unaffected.
func (t *Token) Checkpoint(ctx context.Context) (context.Context, func() error) {
	j := &journal{}
	return context.WithValue(ctx, journalKey{t}, j), func() error {
		j.mu.Lock()
		entries := j.entries
		j.entries = nil
		j.mu.Unlock()

		t.mu.Lock()
		defer t.mu.Unlock()
		var errs []error
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].dropped {
				continue
			}
			if err := t.revert(entries[i].tr); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
