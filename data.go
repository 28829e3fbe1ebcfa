package ftp

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// parsePasvAddr extracts the data endpoint from the text of a 227 reply.
// The reply embeds "(h1,h2,h3,h4,p1,p2)"; the address is h1.h2.h3.h4 and
// the port is p1*256+p2. Exactly six integers, each in [0,255], anything
// else is a passive-mode failure and no socket may be opened.
func parsePasvAddr(text string) (string, error) {
	open := strings.IndexByte(text, '(')
	end := strings.IndexByte(text, ')')
	if open == -1 || end == -1 || end < open {
		return "", fmt.Errorf("%w: no address tuple in %q", ErrPassiveMode, text)
	}

	fields := strings.Split(text[open+1:end], ",")
	if len(fields) != 6 {
		return "", fmt.Errorf("%w: want 6 octets, got %d in %q", ErrPassiveMode, len(fields), text)
	}

	var oct [6]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || v < 0 || v > 255 {
			return "", fmt.Errorf("%w: bad octet %q in %q", ErrPassiveMode, f, text)
		}
		oct[i] = v
	}

	host := fmt.Sprintf("%d.%d.%d.%d", oct[0], oct[1], oct[2], oct[3])
	port := oct[4]*256 + oct[5]

	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

// resolveDataAddr resolves the data connection address. Servers behind NAT
// often advertise 0.0.0.0; in that case the control connection host is
// substituted.
func resolveDataAddr(pasvAddr, controlHost string) string {
	host, port, err := net.SplitHostPort(pasvAddr)
	if err != nil {
		return pasvAddr
	}

	if host == "0.0.0.0" {
		return net.JoinHostPort(controlHost, port)
	}

	return pasvAddr
}

// negotiatePassive issues PASV and dials the advertised endpoint. The
// endpoint is computed fresh on every call; servers may pick a different
// port for each transfer, so it is never cached.
func (s *Session) negotiatePassive() (net.Conn, error) {
	reply, err := s.sendCommand("PASV")
	if err != nil {
		return nil, fmt.Errorf("PASV failed: %w", err)
	}

	if reply.Code != 227 {
		return nil, protocolErr(ErrPassiveMode, "PASV", reply)
	}

	addr, err := parsePasvAddr(reply.Message)
	if err != nil {
		return nil, err
	}
	addr = resolveDataAddr(addr, s.host)

	dataConn, err := s.dialer.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", ErrDataConnection, addr, err)
	}

	if s.dataTimeout > 0 {
		return &deadlineConn{Conn: dataConn, timeout: s.dataTimeout}, nil
	}

	return dataConn, nil
}

// openTransfer negotiates a fresh data connection, then sends the transfer
// command and checks for a preliminary reply. On any failure the data
// socket is closed before returning; the caller only ever sees either a
// live connection or an error, never both.
func (s *Session) openTransfer(cmd string, args ...string) (net.Conn, error) {
	dataConn, err := s.negotiatePassive()
	if err != nil {
		return nil, err
	}

	reply, err := s.sendCommand(cmd, args...)
	if err != nil {
		dataConn.Close()
		return nil, err
	}

	// 150 is the usual "about to open data connection"; some servers send
	// 125 when the connection is considered already open.
	if reply.Code != 150 && reply.Code != 125 {
		dataConn.Close()
		return nil, protocolErr(ErrTransferRejected, cmd, reply)
	}

	return dataConn, nil
}

// finishTransfer closes the data connection and reads the completion reply.
// The close must come first: it is the end-of-data signal the server waits
// for before sending 226.
func (s *Session) finishTransfer(cmd string, dataConn net.Conn) error {
	if err := dataConn.Close(); err != nil {
		return fmt.Errorf("failed to close data connection: %w", err)
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return ErrSessionClosed
	}

	if s.timeout > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(s.timeout)); err != nil {
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	reply, err := readReply(s.reader)
	if err != nil {
		return fmt.Errorf("%w: no completion reply: %v", ErrTransferIncomplete, err)
	}

	s.logger.Debug("ftp transfer finished", "cmd", cmd, "code", reply.Code, "message", reply.Message)

	if !reply.Is2xx() {
		return protocolErr(ErrTransferIncomplete, cmd, reply)
	}

	return nil
}
