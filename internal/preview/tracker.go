package preview

import "sync"

// Token identifies one in-flight preview.
type Token struct {
	seq         uint64
	fingerprint string
}

// Fingerprint is the fingerprint the request was started for.
func (t Token) Fingerprint() string { return t.fingerprint }

// Tracker decides whether a finished preview still describes the newest
// state. A result is current only if no later request was started and no
// different state has been observed since.
type Tracker struct {
	mu     sync.Mutex
	seq    uint64
	latest string
}

// Observe records the fingerprint of a newly received state.
func (t *Tracker) Observe(fingerprint string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = fingerprint
}

// Begin starts a request for fingerprint.
func (t *Tracker) Begin(fingerprint string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.latest = fingerprint
	return Token{seq: t.seq, fingerprint: fingerprint}
}

// IsCurrent reports whether the result for tok may be shown.
func (t *Tracker) IsCurrent(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok.seq == t.seq && tok.fingerprint == t.latest
}
