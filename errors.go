package ftp

import (
	"errors"
	"fmt"
)

// Category errors. Every failure returned by this package wraps one of
// these, so callers can classify errors with errors.Is instead of matching
// message strings or reply codes.
var (
	// ErrConnectionClosed indicates the control connection was closed by
	// the server (or dropped) before a complete reply could be read.
	ErrConnectionClosed = errors.New("ftp: control connection closed")

	// ErrMalformedReply indicates the server sent a line with no parsable
	// three-digit reply code.
	ErrMalformedReply = errors.New("ftp: malformed reply")

	// ErrAuthRejected indicates the server rejected the USER or PASS
	// command during login.
	ErrAuthRejected = errors.New("ftp: authentication rejected")

	// ErrPassiveMode indicates the PASV exchange failed or its reply did
	// not contain a valid six-octet address tuple.
	ErrPassiveMode = errors.New("ftp: passive mode negotiation failed")

	// ErrDataConnection indicates the data socket could not be opened.
	ErrDataConnection = errors.New("ftp: data connection failed")

	// ErrTransferRejected indicates the server refused a transfer command
	// before any data moved (no preliminary 1xx reply).
	ErrTransferRejected = errors.New("ftp: transfer rejected")

	// ErrTransferIncomplete indicates the completion reply after the data
	// phase was missing or not in the 2xx range. Bytes may already have
	// moved; partially written local files are left in place.
	ErrTransferIncomplete = errors.New("ftp: transfer incomplete")

	// ErrSessionBusy indicates an operation was attempted while another
	// one was still in flight on the same session.
	ErrSessionBusy = errors.New("ftp: another operation is in progress")

	// ErrSessionClosed indicates the session was never connected or has
	// been closed. A closed session cannot be reused; dial a new one.
	ErrSessionClosed = errors.New("ftp: session is closed")
)

// ProtocolError represents an FTP protocol failure with full context of the
// command/reply conversation. Failures that belong to a category above wrap
// both the category error and a *ProtocolError, so errors.Is classifies the
// failure and errors.As recovers the reply details.
type ProtocolError struct {
	// Command is the FTP command that was sent (e.g., "RETR file.txt")
	Command string

	// Response is the message received from the server (e.g., "Permission denied")
	Response string

	// Code is the numeric FTP reply code (e.g., 550)
	Code int
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("ftp: %s failed: %s (code %d)", e.Command, e.Response, e.Code)
}

// IsTemporary returns true if the error is a transient failure (4xx).
// This can be used to implement retry logic in callers; the session itself
// never retries.
func (e *ProtocolError) IsTemporary() bool {
	return e.Code >= 400 && e.Code < 500
}

// IsPermanent returns true if the error is a permanent failure (5xx).
func (e *ProtocolError) IsPermanent() bool {
	return e.Code >= 500 && e.Code < 600
}

// protocolErr pairs a category error with the reply that caused it.
func protocolErr(category error, command string, r *Reply) error {
	return fmt.Errorf("%w: %w", category, &ProtocolError{
		Command:  command,
		Response: r.Message,
		Code:     r.Code,
	})
}
