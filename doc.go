// Package ftp implements a plain RFC 959 FTP client session: passive-mode,
// IPv4, one transfer at a time.
//
// # Overview
//
// A Session owns a control connection carrying textual commands and replies,
// and opens a short-lived data connection per transfer, negotiated with
// PASV. Every operation is synchronous and follows the same three-phase
// shape: command, preliminary 1xx reply, data phase, completion 2xx reply.
//
// # Basic Usage
//
//	session, err := ftp.Dial("ftp.example.com:21")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Quit()
//
//	if err := session.Login("username", "password"); err != nil {
//	    log.Fatal(err)
//	}
//
//	lines, err := session.List("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range lines {
//	    fmt.Println(line)
//	}
//
// # File Transfers
//
// Retrieve streams a remote file into any io.Writer; Store streams any
// io.Reader to the server. DownloadFile and UploadFile wrap local files:
//
//	if err := session.DownloadFile("remote.txt", "local.txt"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Failures are classified by sentinel errors (ErrAuthRejected,
// ErrPassiveMode, ErrTransferRejected, ErrTransferIncomplete, ...) and
// carry the server conversation in a *ProtocolError:
//
//	if err := session.Retrieve("missing.txt", w); err != nil {
//	    if errors.Is(err, ftp.ErrTransferRejected) {
//	        var pe *ftp.ProtocolError
//	        if errors.As(err, &pe) {
//	            fmt.Printf("server said: %d %s\n", pe.Code, pe.Response)
//	        }
//	    }
//	}
//
// Note that ErrTransferIncomplete reports a protocol-level failure after
// the data phase: bytes may already have been written to the sink. The
// package never deletes partial local files.
//
// # Out of Scope
//
// Active mode (PORT), TLS, IPv6 data addressing, transfer resumption and
// concurrent transfers on one session are not supported.
package ftp
