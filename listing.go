package ftp

import (
	"strconv"
	"strings"
)

// Entry is a parsed line from a LIST reply. LIST output is not
// standardized, so parsing is best effort: the session's transfer engine
// only deals in raw lines, and this parser exists for presentation layers
// that want names and sizes.
type Entry struct {
	Name   string
	Type   string // "file", "dir", "link" or "unknown"
	Size   int64
	Target string // symlink target, empty otherwise
	Raw    string // the raw LIST line
}

// ParseListLine parses a single LIST line, trying EPLF, DOS and Unix
// formats in that order. Unrecognized lines come back as type "unknown"
// with the raw text as the name; whitespace-only lines yield nil.
func ParseListLine(line string) *Entry {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if entry, ok := parseEPLFEntry(trimmed); ok {
		entry.Raw = line
		return entry
	}
	if entry, ok := parseDOSEntry(trimmed); ok {
		entry.Raw = line
		return entry
	}
	if entry, ok := parseUnixEntry(trimmed); ok {
		entry.Raw = line
		return entry
	}

	return &Entry{
		Raw:  line,
		Name: trimmed,
		Type: "unknown",
	}
}

// parseUnixEntry parses the classic ls -l shape:
// "perms links owner group size month day time/year name"
func parseUnixEntry(line string) (*Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 9 {
		return nil, false
	}

	perms := fields[0]
	if len(perms) < 10 {
		return nil, false
	}
	switch perms[0] {
	case '-', 'd', 'l', 'b', 'c', 'p', 's':
	default:
		return nil, false
	}

	size, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, false
	}

	entry := &Entry{Size: size}
	switch perms[0] {
	case 'd':
		entry.Type = "dir"
	case 'l':
		entry.Type = "link"
	default:
		entry.Type = "file"
	}

	// The name is everything past the timestamp; names may contain spaces.
	name := strings.Join(fields[8:], " ")

	if entry.Type == "link" {
		if target, after, ok := cutArrow(name); ok {
			entry.Name = target
			entry.Target = after
			return entry, true
		}
	}

	entry.Name = name
	return entry, true
}

func cutArrow(name string) (string, string, bool) {
	return strings.Cut(name, " -> ")
}

// parseDOSEntry parses IIS-style listings:
// "12-14-23  12:22PM  1037794 report.pdf" or "... <DIR> logs"
func parseDOSEntry(line string) (*Entry, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || !isDOSDate(fields[0]) {
		return nil, false
	}

	name := strings.Join(fields[3:], " ")

	if fields[2] == "<DIR>" {
		return &Entry{Name: name, Type: "dir"}, true
	}

	size, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return nil, false
	}

	return &Entry{Name: name, Type: "file", Size: size}, true
}

// isDOSDate reports whether s looks like MM-DD-YY[YY] or MM/DD/YY[YY].
func isDOSDate(s string) bool {
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return false
	}

	for i, part := range parts {
		if i < 2 && (len(part) < 1 || len(part) > 2) {
			return false
		}
		if i == 2 && len(part) != 2 && len(part) != 4 {
			return false
		}
		for _, ch := range part {
			if ch < '0' || ch > '9' {
				return false
			}
		}
	}
	return true
}

// parseEPLFEntry parses Easily Parsed LIST Format lines:
// "+i8388621.48594,m825718503,r,s280,\tdjb.html"
func parseEPLFEntry(line string) (*Entry, bool) {
	if !strings.HasPrefix(line, "+") {
		return nil, false
	}

	idx := strings.IndexAny(line[1:], "\t ")
	if idx == -1 {
		return nil, false
	}

	facts := line[1 : idx+1]
	name := strings.TrimSpace(line[idx+2:])
	if name == "" {
		return nil, false
	}

	entry := &Entry{Name: name, Type: "file"}
	for _, fact := range strings.Split(facts, ",") {
		if fact == "" {
			continue
		}
		switch fact[0] {
		case '/':
			entry.Type = "dir"
		case 's':
			if size, err := strconv.ParseInt(fact[1:], 10, 64); err == nil {
				entry.Size = size
			}
		}
	}

	return entry, true
}
