package cli

import (
	"os"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/protolab/ftp"
)

// Completer suggests shell commands and file names. Remote names come from
// a cache the shell refreshes after each listing; local names are read from
// the working directory on demand.
type Completer struct {
	commands    []prompt.Suggest
	remoteFiles []string
	remoteDirs  []string
}

// NewCompleter creates a completer seeded with the shell's command set.
func NewCompleter() *Completer {
	return &Completer{
		commands: []prompt.Suggest{
			{Text: "user", Description: "Log in (prompts for password)"},
			{Text: "list", Description: "List files on the server"},
			{Text: "get", Description: "Download a file"},
			{Text: "put", Description: "Upload a file"},
			{Text: "help", Description: "Show available commands"},
			{Text: "quit", Description: "Close the session and exit"},
		},
	}
}

// UpdateRemote refreshes the cached remote names from a parsed listing.
func (c *Completer) UpdateRemote(entries []*ftp.Entry) {
	c.remoteFiles = c.remoteFiles[:0]
	c.remoteDirs = c.remoteDirs[:0]
	for _, entry := range entries {
		if entry.Type == "dir" {
			c.remoteDirs = append(c.remoteDirs, entry.Name)
		} else {
			c.remoteFiles = append(c.remoteFiles, entry.Name)
		}
	}
}

// Complete returns suggestions for the current prompt input.
func (c *Completer) Complete(d prompt.Document) []prompt.Suggest {
	text := d.TextBeforeCursor()
	words := strings.Fields(text)

	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(text, " ")) {
		return c.suggestCommands(words)
	}

	return c.suggestArguments(words[0], d.GetWordBeforeCursor())
}

func (c *Completer) suggestCommands(words []string) []prompt.Suggest {
	if len(words) == 0 {
		return c.commands
	}

	prefix := strings.ToLower(words[0])
	var filtered []prompt.Suggest
	for _, s := range c.commands {
		if strings.HasPrefix(s.Text, prefix) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func (c *Completer) suggestArguments(command, prefix string) []prompt.Suggest {
	switch strings.ToLower(command) {
	case "get":
		return suggest(c.remoteFiles, prefix, "Remote file")
	case "list":
		return suggest(c.remoteDirs, prefix, "Remote directory")
	case "put":
		return suggest(localFiles(), prefix, "Local file")
	default:
		return nil
	}
}

func suggest(names []string, prefix, description string) []prompt.Suggest {
	var suggestions []prompt.Suggest
	for _, name := range names {
		// Hidden files only show up when explicitly asked for.
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			suggestions = append(suggestions, prompt.Suggest{
				Text:        name,
				Description: description,
			})
		}
	}
	return suggestions
}

func localFiles() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	dirEntries, err := os.ReadDir(cwd)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}
