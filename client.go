package ftp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"
)

// DefaultControlPort is used when the dial address carries no port.
const DefaultControlPort = "21"

// Session represents one FTP client session. It exclusively owns the
// control socket for its whole lifetime and at most one data socket at a
// time during a transfer. All operations are synchronous: each one blocks
// until the server's reply (and, for transfers, the data phase) completes.
//
// A Session is not safe for concurrent use; a second operation issued while
// one is in flight fails with ErrSessionBusy.
type Session struct {
	// conn is the control channel; nil once the session is closed
	conn net.Conn

	// reader is a buffered reader over the control channel
	reader *bufio.Reader

	// timeout bounds control-channel reads and writes
	timeout time.Duration

	// dataTimeout bounds data-channel reads and writes; defaults to the
	// control timeout so a dead data connection cannot hang a transfer
	dataTimeout time.Duration

	// logger is used for debug logging
	logger *slog.Logger

	// dialer is used to establish both control and data connections
	dialer *net.Dialer

	// host and port of the server; host is reused when a PASV reply
	// advertises 0.0.0.0
	host string
	port string

	// mu guards state, busy and conn
	mu    sync.Mutex
	state ConnState
	busy  bool
}

// Dial connects to an FTP server and consumes its 220 banner. The address
// is "host:port"; a bare "host" defaults to port 21.
//
// Example:
//
//	session, err := ftp.Dial("ftp.example.com:21")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Quit()
func Dial(addr string, options ...Option) (*Session, error) {
	host, port, err := splitAddr(addr)
	if err != nil {
		return nil, err
	}

	s := &Session{
		host:    host,
		port:    port,
		timeout: 30 * time.Second,
		dialer:  &net.Dialer{},
		state:   StateDisconnected,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if s.dataTimeout == 0 {
		s.dataTimeout = s.timeout
	}
	s.dialer.Timeout = s.timeout

	if err := s.connect(); err != nil {
		return nil, err
	}

	return s, nil
}

// splitAddr splits a dial address, filling in the default control port.
func splitAddr(addr string) (host, port string, err error) {
	host, port, err = net.SplitHostPort(addr)
	if err == nil {
		return host, port, nil
	}

	var aerr *net.AddrError
	if errors.As(err, &aerr) && aerr.Err == "missing port in address" {
		return addr, DefaultControlPort, nil
	}

	return "", "", fmt.Errorf("invalid address: %w", err)
}

// connect establishes the control connection and reads the banner.
func (s *Session) connect() error {
	s.setState(StateConnecting)

	addr := net.JoinHostPort(s.host, s.port)
	s.logger.Debug("connecting to ftp server", "addr", addr)

	conn, err := s.dialer.Dial("tcp", addr)
	if err != nil {
		s.setState(StateDisconnected)
		return fmt.Errorf("failed to connect: %w", err)
	}

	s.conn = conn
	s.reader = bufio.NewReader(conn)

	if s.timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
			s.teardown()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	banner, err := readReply(s.reader)
	if err != nil {
		s.teardown()
		return fmt.Errorf("failed to read greeting: %w", err)
	}

	s.logger.Debug("ftp greeting", "code", banner.Code, "message", banner.Message)

	if banner.Code != 220 {
		s.teardown()
		return &ProtocolError{
			Command:  "CONNECT",
			Response: banner.Message,
			Code:     banner.Code,
		}
	}

	s.setState(StateConnected)
	return nil
}

// Login authenticates with USER and PASS. A 230 reply to USER means the
// server wants no password and the session is authenticated immediately.
// Any reply to USER other than 331/230 fails without sending PASS, leaving
// the session connected but unauthenticated. Re-login on an authenticated
// session is allowed.
func (s *Session) Login(username, password string) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	reply, err := s.sendCommand("USER", username)
	if err != nil {
		return err
	}

	if reply.Code == 230 {
		s.setState(StateAuthenticated)
		return nil
	}

	if reply.Code != 331 {
		return protocolErr(ErrAuthRejected, "USER", reply)
	}

	reply, err = s.sendCommand("PASS", password)
	if err != nil {
		return err
	}

	if reply.Code != 230 {
		return protocolErr(ErrAuthRejected, "PASS", reply)
	}

	s.setState(StateAuthenticated)
	return nil
}

// Noop sends a NOOP command. Useful as a liveness probe.
func (s *Session) Noop() error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	_, err := s.expect2xx("NOOP")
	return err
}

// Quit closes the session: best-effort QUIT on the control channel, then
// socket teardown. Safe to call from any state and idempotent; the second
// call is a no-op. The session cannot be reused afterwards.
func (s *Session) Quit() error {
	s.mu.Lock()
	conn := s.conn
	reader := s.reader
	s.conn = nil
	s.reader = nil
	s.state = StateDisconnected
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	// The goodbye is best effort; a server that already hung up is fine.
	if s.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(s.timeout))
	}
	if _, err := io.WriteString(conn, "QUIT\r\n"); err == nil {
		_, _ = readReply(reader)
	}

	return conn.Close()
}

// teardown closes the control socket after a failed handshake.
func (s *Session) teardown() {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.reader = nil
	s.state = StateDisconnected
	s.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}
