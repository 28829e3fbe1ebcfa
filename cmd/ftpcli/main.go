// Command ftpcli is an interactive FTP client.
//
// Usage:
//
//	ftpcli [-timeout 30s] [-debug] <server> [port]
//
// It connects immediately and then reads commands at an "ftp>" prompt:
// user, list, get, put, help, quit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"

	"github.com/protolab/ftp"
	"github.com/protolab/ftp/internal/cli"
)

// loginConfig holds the connection settings gathered from flags and args.
type loginConfig struct {
	Address string
	Timeout time.Duration
	Debug   bool
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(2)
	}

	sh, err := newShell(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sh.palette.Info.Printf("Connected to %s. Type 'help' for commands.\n", cfg.Address)

	p := prompt.New(
		sh.execute,
		sh.completer.Complete,
		prompt.OptionTitle("ftpcli"),
		prompt.OptionPrefix("ftp> "),
		prompt.OptionPrefixTextColor(prompt.Green),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
	)
	p.Run()
}

func parseArgs(args []string) (*loginConfig, error) {
	fs := flag.NewFlagSet("ftpcli", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "control and data I/O timeout")
	debug := fs.Bool("debug", false, "log the protocol conversation to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return nil, fmt.Errorf("expected <server> [port]")
	}

	addr := rest[0]
	if len(rest) == 2 {
		addr = rest[0] + ":" + rest[1]
	}

	return &loginConfig{Address: addr, Timeout: *timeout, Debug: *debug}, nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ftpcli [-timeout 30s] [-debug] <server> [port]")
	fmt.Fprintln(os.Stderr, "commands: user <name> | list [path] | get <remote> [local] | put <local> [remote] | help | quit")
}

// shell dispatches prompt input to session operations.
type shell struct {
	session   *ftp.Session
	palette   *cli.Palette
	completer *cli.Completer
}

func newShell(cfg *loginConfig) (*shell, error) {
	opts := []ftp.Option{ftp.WithTimeout(cfg.Timeout)}
	if cfg.Debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, ftp.WithLogger(logger))
	}

	session, err := ftp.Dial(cfg.Address, opts...)
	if err != nil {
		return nil, err
	}

	return &shell{
		session:   session,
		palette:   cli.DefaultPalette(),
		completer: cli.NewCompleter(),
	}, nil
}

func (sh *shell) execute(input string) {
	words := strings.Fields(input)
	if len(words) == 0 {
		return
	}

	cmd, args := strings.ToLower(words[0]), words[1:]

	switch cmd {
	case "help":
		usage()
	case "user":
		sh.login(args)
	case "list":
		sh.list(args)
	case "get":
		sh.get(args)
	case "put":
		sh.put(args)
	case "quit", "exit":
		_ = sh.session.Quit()
		sh.palette.Info.Println("Goodbye.")
		os.Exit(0)
	default:
		sh.palette.Error.Printf("unknown command: %s\n", cmd)
	}
}

func (sh *shell) login(args []string) {
	if len(args) != 1 {
		sh.palette.Error.Println("usage: user <name>")
		return
	}

	fmt.Print("Password: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		sh.palette.Error.Printf("failed to read password: %v\n", err)
		return
	}

	if err := sh.session.Login(args[0], string(secret)); err != nil {
		sh.palette.Error.Printf("login failed: %v\n", err)
		return
	}

	sh.palette.Success.Println("Logged in.")
}

func (sh *shell) list(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	entries, err := sh.session.ListEntries(path)
	if err != nil {
		sh.palette.Error.Printf("list failed: %v\n", err)
		return
	}

	sh.completer.UpdateRemote(entries)

	if err := cli.RenderListing(os.Stdout, entries); err != nil {
		sh.palette.Error.Printf("failed to render listing: %v\n", err)
	}
}

func (sh *shell) get(args []string) {
	if len(args) < 1 || len(args) > 2 {
		sh.palette.Error.Println("usage: get <remote> [local]")
		return
	}

	remote := args[0]
	local := remote
	if len(args) == 2 {
		local = args[1]
	}

	f, err := os.Create(local)
	if err != nil {
		sh.palette.Error.Printf("cannot create %s: %v\n", local, err)
		return
	}
	defer f.Close()

	pw := &ftp.ProgressWriter{
		Writer:   f,
		Callback: func(n int64) { fmt.Printf("\rreceived %d bytes", n) },
	}

	if err := sh.session.Retrieve(remote, pw); err != nil {
		fmt.Println()
		sh.palette.Error.Printf("download failed: %v\n", err)
		return
	}

	fmt.Println()
	sh.palette.Success.Printf("Downloaded %s -> %s\n", remote, local)
}

func (sh *shell) put(args []string) {
	if len(args) < 1 || len(args) > 2 {
		sh.palette.Error.Println("usage: put <local> [remote]")
		return
	}

	local := args[0]
	remote := local
	if len(args) == 2 {
		remote = args[1]
	}

	f, err := os.Open(local)
	if err != nil {
		sh.palette.Error.Printf("cannot open %s: %v\n", local, err)
		return
	}
	defer f.Close()

	pr := &ftp.ProgressReader{
		Reader:   f,
		Callback: func(n int64) { fmt.Printf("\rsent %d bytes", n) },
	}

	if err := sh.session.Store(remote, pr); err != nil {
		fmt.Println()
		sh.palette.Error.Printf("upload failed: %v\n", err)
		return
	}

	fmt.Println()
	sh.palette.Success.Printf("Uploaded %s -> %s\n", local, remote)
}
