package geoscribe

import "sync/atomic"

// Session is a stateful, stoppable unit of interactive editing holding
// exclusive pointer-event ownership. Sessions are created by the Start
// functions and destroyed exactly once via Stop.
type Session interface {
	// Type identifies the kind of session.
	Type() SessionType
	// Stopped fires exactly once, when the session is stopped.
	Stopped() *Event[struct{}]
	// Stop tears the session down: interactions are cleared, exclusivity is
	// relinquished, flags are restored, and the scratch layer is destroyed.
	// Stop is idempotent and always safe to call, including mid-drag.
	Stop()
}

// baseSession carries the lifecycle shared by all session kinds: a stop flag,
// the stopped event, and a teardown hook run exactly once.
type baseSession struct {
	typ SessionType
	// stoppedFlag is atomic: asynchronous terrain continuations read it from
	// their own goroutine while Stop writes it on the application goroutine.
	stoppedFlag atomic.Bool
	stopped     Event[struct{}]
	teardown    func()
}

// Type returns the session kind.
func (s *baseSession) Type() SessionType {
	return s.typ
}

// Stopped returns the event fired exactly once on stop.
func (s *baseSession) Stopped() *Event[struct{}] {
	return &s.stopped
}

// IsStopped reports whether Stop has been called.
func (s *baseSession) IsStopped() bool {
	return s.stoppedFlag.Load()
}

// Stop runs teardown and fires Stopped. Repeated calls are no-ops.
func (s *baseSession) Stop() {
	if !s.stoppedFlag.CompareAndSwap(false, true) {
		return
	}
	if s.teardown != nil {
		s.teardown()
	}
	s.stopped.Fire(struct{}{})
}
