package ftp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// Reply represents one logical FTP server reply, single- or multi-line.
type Reply struct {
	// Code is the three-digit reply code (e.g., 220, 550)
	Code int

	// Message is the human-readable text, with multi-line replies joined
	// by newlines
	Message string

	// Lines contains the raw reply lines as received
	Lines []string
}

// Is1xx returns true if the reply is a preliminary positive (1xx) — the
// requested action is starting and the data phase may begin.
func (r *Reply) Is1xx() bool {
	return r.Code >= 100 && r.Code < 200
}

// Is2xx returns true if the reply is a positive completion (2xx).
func (r *Reply) Is2xx() bool {
	return r.Code >= 200 && r.Code < 300
}

// Is3xx returns true if the reply is an intermediate positive (3xx) — the
// server needs more input, as after USER.
func (r *Reply) Is3xx() bool {
	return r.Code >= 300 && r.Code < 400
}

// Is4xx returns true if the reply is a transient failure (4xx).
func (r *Reply) Is4xx() bool {
	return r.Code >= 400 && r.Code < 500
}

// Is5xx returns true if the reply is a permanent failure (5xx).
func (r *Reply) Is5xx() bool {
	return r.Code >= 500 && r.Code < 600
}

// String returns the full reply as a string.
func (r *Reply) String() string {
	return strings.Join(r.Lines, "\n")
}

// replyCode parses the leading three-digit code of a reply line. It is
// stricter than strconv.Atoi: exactly three ASCII digits, no signs.
func replyCode(line string) (int, bool) {
	if len(line) < 3 {
		return 0, false
	}
	code := 0
	for i := 0; i < 3; i++ {
		if line[i] < '0' || line[i] > '9' {
			return 0, false
		}
		code = code*10 + int(line[i]-'0')
	}
	return code, true
}

// readReply reads one complete logical reply from the control channel.
//
// Single-line format: "220 Welcome\r\n"
// Multi-line format:
//
//	"150-About to open data connection\r\n"
//	"150-Some more text\r\n"
//	"150 Done\r\n"
//
// A multi-line reply ends only on a line carrying the opening code followed
// by a space. Intermediate lines are reply text even when they happen to
// start with a different code and a space (RFC 959 section 4.2); a naive
// check of the fourth character alone would cut the reply short.
func readReply(r *bufio.Reader) (*Reply, error) {
	line, err := readReplyLine(r)
	if err != nil {
		return nil, err
	}

	code, ok := replyCode(line)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReply, line)
	}

	lines := []string{line}

	// Single-line reply: "ddd text" or a bare "ddd".
	if len(line) == 3 || line[3] == ' ' {
		return &Reply{
			Code:    code,
			Message: replyText(line),
			Lines:   lines,
		}, nil
	}

	if line[3] != '-' {
		return nil, fmt.Errorf("%w: %q", ErrMalformedReply, line)
	}

	// Multi-line reply: accumulate until the matching terminator.
	terminator := line[0:3] + " "
	for {
		line, err = readReplyLine(r)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)

		if strings.HasPrefix(line, terminator) {
			break
		}
	}

	var messageLines []string
	for _, l := range lines {
		messageLines = append(messageLines, replyText(l))
	}

	return &Reply{
		Code:    code,
		Message: strings.Join(messageLines, "\n"),
		Lines:   lines,
	}, nil
}

// readReplyLine reads a single CRLF-terminated line, mapping EOF to
// ErrConnectionClosed: a socket that stops producing bytes mid-reply is a
// closed connection, not a reply of code zero.
func readReplyLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return "", fmt.Errorf("%w: %v", ErrConnectionClosed, err)
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// replyText strips the "ddd " or "ddd-" prefix from a reply line, leaving
// continuation lines that carry no code untouched.
func replyText(line string) string {
	if _, ok := replyCode(line); ok {
		if len(line) == 3 {
			return ""
		}
		if line[3] == ' ' || line[3] == '-' {
			return line[4:]
		}
	}
	return line
}

// sendCommand writes one command line to the control channel and blocks
// until a complete reply has been read. Unexpected reply codes are returned
// as data, not errors; policy belongs to the caller.
func (s *Session) sendCommand(command string, args ...string) (*Reply, error) {
	cmd := command
	if len(args) > 0 {
		cmd = command + " " + strings.Join(args, " ")
	}

	if command == "PASS" {
		s.logger.Debug("ftp command", "cmd", "PASS ****")
	} else {
		s.logger.Debug("ftp command", "cmd", cmd)
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil, ErrSessionClosed
	}

	if s.timeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
			return nil, fmt.Errorf("failed to set write deadline: %w", err)
		}
	}

	if _, err := fmt.Fprintf(conn, "%s\r\n", cmd); err != nil {
		return nil, fmt.Errorf("failed to send command: %w", err)
	}

	// The deadline lives on the connection, not the bufio.Reader.
	if s.timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	reply, err := readReply(s.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}

	s.logger.Debug("ftp reply", "code", reply.Code, "message", reply.Message)

	return reply, nil
}

// expectCode sends a command and verifies the reply code matches exactly.
func (s *Session) expectCode(expected int, command string, args ...string) (*Reply, error) {
	reply, err := s.sendCommand(command, args...)
	if err != nil {
		return nil, err
	}

	if reply.Code != expected {
		return reply, &ProtocolError{
			Command:  command,
			Response: reply.Message,
			Code:     reply.Code,
		}
	}

	return reply, nil
}

// expect2xx sends a command and verifies the reply is a positive completion.
func (s *Session) expect2xx(command string, args ...string) (*Reply, error) {
	reply, err := s.sendCommand(command, args...)
	if err != nil {
		return nil, err
	}

	if !reply.Is2xx() {
		return reply, &ProtocolError{
			Command:  command,
			Response: reply.Message,
			Code:     reply.Code,
		}
	}

	return reply, nil
}
