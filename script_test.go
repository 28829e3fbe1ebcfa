package ftp

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
)

// testServer is a minimal scripted FTP server speaking just enough of the
// protocol to drive one client session end to end over real sockets. It
// accepts any username except "blocked" and the password "secret".
type testServer struct {
	t  *testing.T
	ln net.Listener

	// files holds downloadable content by remote name
	files map[string][]byte

	// listing holds the raw lines returned for LIST
	listing []string

	// pasvReply, when set, replaces the normal 227 reply verbatim
	pasvReply string

	// finalReply replaces the 226 completion reply when set
	finalReply string

	mu       sync.Mutex
	commands []string
	stored   map[string][]byte
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start test server: %v", err)
	}

	ts := &testServer{
		t:      t,
		ln:     ln,
		files:  make(map[string][]byte),
		stored: make(map[string][]byte),
	}

	go ts.serve()
	t.Cleanup(func() { _ = ln.Close() })

	return ts
}

func (ts *testServer) addr() string {
	return ts.ln.Addr().String()
}

// receivedCommands returns a copy of every command line seen so far.
func (ts *testServer) receivedCommands() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return append([]string(nil), ts.commands...)
}

func (ts *testServer) storedFile(name string) []byte {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.stored[name]
}

func (ts *testServer) serve() {
	for {
		conn, err := ts.ln.Accept()
		if err != nil {
			return
		}
		go ts.handle(conn)
	}
}

func (ts *testServer) handle(conn net.Conn) {
	defer conn.Close()

	fmt.Fprintf(conn, "220 testserver ready\r\n")

	r := bufio.NewReader(conn)
	var dataLn net.Listener
	defer func() {
		if dataLn != nil {
			dataLn.Close()
		}
	}()

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")

		ts.mu.Lock()
		ts.commands = append(ts.commands, line)
		ts.mu.Unlock()

		cmd, arg, _ := strings.Cut(line, " ")
		switch cmd {
		case "USER":
			if arg == "blocked" {
				fmt.Fprintf(conn, "530 Not welcome\r\n")
			} else {
				fmt.Fprintf(conn, "331 Password required\r\n")
			}

		case "PASS":
			if arg == "secret" {
				fmt.Fprintf(conn, "230 Logged in\r\n")
			} else {
				fmt.Fprintf(conn, "530 Login incorrect\r\n")
			}

		case "NOOP":
			fmt.Fprintf(conn, "200 OK\r\n")

		case "PASV":
			if ts.pasvReply != "" {
				fmt.Fprintf(conn, "%s\r\n", ts.pasvReply)
				continue
			}
			if dataLn != nil {
				dataLn.Close()
			}
			dataLn, err = net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				fmt.Fprintf(conn, "425 Cannot open data connection\r\n")
				continue
			}
			fmt.Fprintf(conn, "227 Entering Passive Mode (%s)\r\n", pasvTuple(dataLn.Addr()))

		case "LIST":
			var payload []byte
			if len(ts.listing) > 0 {
				payload = []byte(strings.Join(ts.listing, "\r\n") + "\r\n")
			}
			ts.sendData(conn, &dataLn, payload)

		case "RETR":
			content, ok := ts.files[arg]
			if !ok {
				fmt.Fprintf(conn, "550 No such file\r\n")
				continue
			}
			ts.sendData(conn, &dataLn, content)

		case "STOR":
			if dataLn == nil {
				fmt.Fprintf(conn, "425 Use PASV first\r\n")
				continue
			}
			fmt.Fprintf(conn, "150 Ok to send data\r\n")
			dc, err := dataLn.Accept()
			dataLn.Close()
			dataLn = nil
			if err != nil {
				fmt.Fprintf(conn, "426 Data connection failed\r\n")
				continue
			}
			content, _ := io.ReadAll(dc)
			dc.Close()
			ts.mu.Lock()
			ts.stored[arg] = content
			ts.mu.Unlock()
			ts.sendFinal(conn)

		case "QUIT":
			fmt.Fprintf(conn, "221 Bye\r\n")
			return

		default:
			fmt.Fprintf(conn, "502 Command not implemented\r\n")
		}
	}
}

// sendData runs the server side of a download: preliminary reply, payload
// on the data connection, close, completion reply.
func (ts *testServer) sendData(conn net.Conn, dataLn *net.Listener, payload []byte) {
	if *dataLn == nil {
		fmt.Fprintf(conn, "425 Use PASV first\r\n")
		return
	}
	fmt.Fprintf(conn, "150 Opening data connection\r\n")

	dc, err := (*dataLn).Accept()
	(*dataLn).Close()
	*dataLn = nil
	if err != nil {
		fmt.Fprintf(conn, "426 Data connection failed\r\n")
		return
	}

	_, _ = dc.Write(payload)
	dc.Close()
	ts.sendFinal(conn)
}

func (ts *testServer) sendFinal(conn net.Conn) {
	if ts.finalReply != "" {
		fmt.Fprintf(conn, "%s\r\n", ts.finalReply)
		return
	}
	fmt.Fprintf(conn, "226 Transfer complete\r\n")
}

func pasvTuple(addr net.Addr) string {
	tcp := addr.(*net.TCPAddr)
	ip := tcp.IP.To4()
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", ip[0], ip[1], ip[2], ip[3], tcp.Port/256, tcp.Port%256)
}

// dialTestServer connects a session to the scripted server.
func dialTestServer(t *testing.T, ts *testServer, options ...Option) *Session {
	t.Helper()

	s, err := Dial(ts.addr(), options...)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Quit() })

	return s
}
