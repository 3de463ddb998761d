// Package verification contains the email verification code lifecycle use cases.
package verification

import "sync"

// EmailLocks serializes challenge mutations per email. Issue, resend and
// verify for the same address never interleave; operations on different
// addresses proceed independently.
type EmailLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEmailLocks creates an empty lock set.
func NewEmailLocks() *EmailLocks {
	return &EmailLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for email and returns its unlock function.
func (l *EmailLocks) Lock(email string) func() {
	l.mu.Lock()
	m, ok := l.locks[email]
	if !ok {
		m = &sync.Mutex{}
		l.locks[email] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
