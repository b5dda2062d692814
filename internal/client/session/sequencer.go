package session

import (
	"sync"

	"github.com/TusharG27x/codebuddy/internal/common"
)

// Token identifies one credential exchange started with Sequencer.Begin.
type Token uint64

// Sequencer lets only the most recent credential exchange update the store.
//
// Each login attempt takes a Token before its request goes out. When the
// response arrives the caller applies it through Commit, which refuses any
// token that is no longer the latest. Invalidate (called on logout) retires
// every outstanding token, so responses landing after a logout are dropped.
type Sequencer struct {
	mu  sync.Mutex
	cur uint64
}

func (q *Sequencer) Begin() Token {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.cur++
	return Token(q.cur)
}

// Invalidate retires all tokens handed out so far.
func (q *Sequencer) Invalidate() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.cur++
}

// Commit runs apply if t is still the latest token and returns its error.
// Otherwise it returns common.ErrStaleResponse without calling apply. The
// check and apply happen under one lock, so an Invalidate cannot slip
// between them.
func (q *Sequencer) Commit(t Token, apply func() error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if uint64(t) != q.cur {
		return common.ErrStaleResponse
	}
	return apply()
}
