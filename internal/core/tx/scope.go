package tx

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrScopeClosed is returned by Begin after the scope has been closed.
var ErrScopeClosed = errors.New("tx: scope already closed")

// Scope decorates one raw connection with "one real transaction per scope"
// semantics. The first Begin opens the real transaction and creates the
// scope's single Counter; every later Begin returns the same counter with its
// begin count incremented. Close finalizes the counter (if one was ever
// created) and then releases the raw connection, exactly once.
//
// One Scope serves one logical request processed sequentially. Creation of
// the counter and the increments are still mutex-guarded so that a misbehaving
// caller cannot corrupt the counts.
type Scope struct {
	mu      sync.Mutex
	conn    Conn
	counter *Counter
	closed  bool
}

// NewScope creates a Scope owning the given raw connection.
// The scope assumes exclusive ownership: nothing else may begin transactions
// on conn for the scope's lifetime.
func NewScope(conn Conn) *Scope {
	return &Scope{conn: conn}
}

// Begin returns the scope's shared Counter, opening the real transaction on
// the first call. Every call records one begin on the counter before
// returning it. If the raw connection fails to begin, the error propagates
// and no counter is created.
func (s *Scope) Begin(ctx context.Context) (*Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrScopeClosed
	}

	if s.counter == nil {
		t, err := s.conn.Begin(ctx)
		if err != nil {
			return nil, fmt.Errorf("begin scope transaction: %w", err)
		}
		s.counter = NewCounter(t)
	}

	s.counter.RequestBegin()
	return s.counter, nil
}

// Counter returns the scope's counter, or nil if no transaction was ever
// requested. Intended for test harnesses inspecting the pending outcome.
func (s *Scope) Counter() *Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

// Close finalizes the pending transaction (if any) and releases the raw
// connection. It runs exactly once; later calls are no-ops returning nil.
// A finalize failure is surfaced to the caller but never prevents the
// connection from being released.
func (s *Scope) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var finErr error
	if s.counter != nil {
		finErr = s.counter.Finalize(ctx)
	}

	if err := s.conn.Close(ctx); err != nil {
		return errors.Join(finErr, fmt.Errorf("close connection: %w", err))
	}
	return finErr
}
