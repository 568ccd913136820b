// Package stopwatch is the focus-session state machine. It counts clock
// ticks rather than reading the wall clock, so a session advances exactly
// once per tick while running.
package stopwatch

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StatePending State = "pending"
)

// Session is not safe for concurrent use.
type Session struct {
	state   State
	elapsed int
}

func New() *Session {
	return &Session{state: StateIdle}
}

func (s *Session) State() State { return s.state }

// Elapsed returns whole seconds counted so far.
func (s *Session) Elapsed() int { return s.elapsed }

// Active reports whether a session is running or paused.
func (s *Session) Active() bool {
	return s.state == StateRunning || s.state == StatePaused
}

// Start is valid only from idle.
func (s *Session) Start() bool {
	if s.state != StateIdle {
		return false
	}
	s.state = StateRunning
	s.elapsed = 0
	return true
}

func (s *Session) Pause() bool {
	if s.state != StateRunning {
		return false
	}
	s.state = StatePaused
	return true
}

func (s *Session) Resume() bool {
	if s.state != StatePaused {
		return false
	}
	s.state = StateRunning
	return true
}

// TogglePause flips between running and paused.
func (s *Session) TogglePause() bool {
	if s.state == StateRunning {
		return s.Pause()
	}
	return s.Resume()
}

// Tick advances the counter by one second while running.
func (s *Session) Tick() bool {
	if s.state != StateRunning {
		return false
	}
	s.elapsed++
	return true
}

// Reset drops an active session without logging anything.
func (s *Session) Reset() bool {
	if !s.Active() {
		return false
	}
	s.state = StateIdle
	s.elapsed = 0
	return true
}

// Finish freezes an active session and waits for Commit or Discard.
func (s *Session) Finish() bool {
	if !s.Active() {
		return false
	}
	s.state = StatePending
	return true
}

// PendingMinutes is the frozen duration rounded up to whole minutes. It is
// zero outside the pending state.
func (s *Session) PendingMinutes() int {
	if s.state != StatePending {
		return 0
	}
	return CeilMinutes(s.elapsed)
}

// Commit hands the pending minutes to logFn and returns to idle when logFn
// accepts them. A rejected commit leaves the session pending.
func (s *Session) Commit(logFn func(minutes int) bool) bool {
	if s.state != StatePending || logFn == nil {
		return false
	}
	if !logFn(s.PendingMinutes()) {
		return false
	}
	s.state = StateIdle
	s.elapsed = 0
	return true
}

func (s *Session) Discard() bool {
	if s.state != StatePending {
		return false
	}
	s.state = StateIdle
	s.elapsed = 0
	return true
}

func CeilMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}
