package cli

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/protolab/ftp"
)

// RenderListing writes a parsed directory listing as a borderless table.
// Directories get a trailing slash and no size, symlinks a trailing "@".
func RenderListing(w io.Writer, entries []*ftp.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "directory is empty")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Type", "Size")
	table.Options(
		tablewriter.WithRendition(tw.Rendition{Borders: tw.Border{
			Left: tw.Pending, Right: tw.Pending, Top: tw.Pending, Bottom: tw.Pending,
		}}),
		tablewriter.WithPadding(tw.Padding{Left: "  ", Right: "  "}),
	)

	for _, entry := range entries {
		name := entry.Name
		size := formatSize(entry.Size)

		switch entry.Type {
		case "dir":
			name += "/"
			size = "-"
		case "link":
			name += "@"
			size = "-"
		case "unknown":
			// Keep the raw line visible rather than guessing.
			name = entry.Raw
			size = "?"
		}

		table.Append([]string{name, entry.Type, size})
	}

	return table.Render()
}

// formatSize renders a byte count in human-readable form.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
