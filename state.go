package ftp

// ConnState describes where a session is in its lifecycle. Transitions only
// move forward (Disconnected → Connecting → Connected → Authenticated)
// except for teardown, which is legal from any state and lands back on
// Disconnected. A session that reached Disconnected through Quit is dead;
// reconnecting requires dialing a new session.
type ConnState int

const (
	// StateDisconnected is the initial and final state. No sockets exist.
	StateDisconnected ConnState = iota

	// StateConnecting means the control socket is being established and
	// the 220 banner has not been read yet.
	StateConnecting

	// StateConnected means the banner was accepted. Transfers are already
	// legal here; whether an unauthenticated client may list or fetch is
	// the server's call, matching servers that allow anonymous access.
	StateConnected

	// StateAuthenticated means USER/PASS completed with a 230 reply.
	StateAuthenticated
)

// String returns a human-readable state name.
func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st ConnState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// beginOp marks an operation in flight. It fails fast when the session is
// closed or when another operation has not finished yet, instead of letting
// two exchanges interleave on the control socket.
func (s *Session) beginOp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ErrSessionClosed
	}
	if s.busy {
		return ErrSessionBusy
	}
	s.busy = true
	return nil
}

func (s *Session) endOp() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
