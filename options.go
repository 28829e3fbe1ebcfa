package ftp

import (
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Option is a functional option for configuring a session at dial time.
type Option func(*Session) error

// WithTimeout sets the timeout applied to the initial connect and to every
// control-channel read and write. The default is 30 seconds. Data-channel
// I/O uses the same value unless WithDataTimeout overrides it.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout < 0 {
			return fmt.Errorf("negative timeout: %v", timeout)
		}
		s.timeout = timeout
		return nil
	}
}

// WithDataTimeout sets a separate timeout for data-channel reads and
// writes. Useful for slow links where listing replies are quick but large
// file transfers need more headroom per read.
func WithDataTimeout(timeout time.Duration) Option {
	return func(s *Session) error {
		if timeout < 0 {
			return fmt.Errorf("negative data timeout: %v", timeout)
		}
		s.dataTimeout = timeout
		return nil
	}
}

// WithLogger enables debug logging using the provided logger. Commands,
// replies and transfer completions are logged at debug level; the PASS
// argument is redacted.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	}))
//	session, _ := ftp.Dial("ftp.example.com:21", ftp.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			return fmt.Errorf("nil logger")
		}
		s.logger = logger
		return nil
	}
}

// WithDialer sets a custom net.Dialer used for both the control and data
// connections. This can be used to pin a source address or tune TCP
// keep-alive settings.
func WithDialer(dialer *net.Dialer) Option {
	return func(s *Session) error {
		if dialer == nil {
			return fmt.Errorf("nil dialer")
		}
		s.dialer = dialer
		return nil
	}
}
