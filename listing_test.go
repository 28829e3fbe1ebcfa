package ftp

import "testing"

func TestParseListLine_Unix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		line     string
		wantName string
		wantType string
		wantSize int64
	}{
		{
			name:     "regular file",
			line:     "-rw-r--r--   1 owner group      12345 Jan 10 12:00 report.pdf",
			wantName: "report.pdf",
			wantType: "file",
			wantSize: 12345,
		},
		{
			name:     "directory",
			line:     "drwxr-xr-x   2 owner group       4096 Jan 10 12:00 pub",
			wantName: "pub",
			wantType: "dir",
			wantSize: 4096,
		},
		{
			name:     "name with spaces",
			line:     "-rw-r--r--   1 owner group        512 Jan 10 12:00 my report final.txt",
			wantName: "my report final.txt",
			wantType: "file",
			wantSize: 512,
		},
		{
			name:     "file with year instead of time",
			line:     "-rw-r--r--   1 owner group       1024 Mar  3  2024 archive.tar",
			wantName: "archive.tar",
			wantType: "file",
			wantSize: 1024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseListLine(tt.line)

			if entry.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", entry.Name, tt.wantName)
			}
			if entry.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", entry.Type, tt.wantType)
			}
			if entry.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", entry.Size, tt.wantSize)
			}
			if entry.Raw != tt.line {
				t.Errorf("Raw = %q, want the original line", entry.Raw)
			}
		})
	}
}

func TestParseListLine_UnixSymlink(t *testing.T) {
	t.Parallel()
	line := "lrwxrwxrwx   1 owner group         11 Jan 10 12:00 current -> release-2.1"

	entry := ParseListLine(line)

	if entry.Type != "link" {
		t.Fatalf("Type = %q, want link", entry.Type)
	}
	if entry.Name != "current" {
		t.Errorf("Name = %q, want %q", entry.Name, "current")
	}
	if entry.Target != "release-2.1" {
		t.Errorf("Target = %q, want %q", entry.Target, "release-2.1")
	}
}

func TestParseListLine_DOS(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		line     string
		wantName string
		wantType string
		wantSize int64
	}{
		{
			name:     "file",
			line:     "01-10-26  03:15PM               104857 setup.exe",
			wantName: "setup.exe",
			wantType: "file",
			wantSize: 104857,
		},
		{
			name:     "directory",
			line:     "01-10-26  03:15PM       <DIR>          Program Files",
			wantName: "Program Files",
			wantType: "dir",
			wantSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseListLine(tt.line)

			if entry.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", entry.Name, tt.wantName)
			}
			if entry.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", entry.Type, tt.wantType)
			}
			if entry.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", entry.Size, tt.wantSize)
			}
		})
	}
}

func TestParseListLine_EPLF(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		line     string
		wantName string
		wantType string
		wantSize int64
	}{
		{
			name:     "file with size",
			line:     "+m825718503,s280,r,\tdjb.html",
			wantName: "djb.html",
			wantType: "file",
			wantSize: 280,
		},
		{
			name:     "directory",
			line:     "+m825718503,/,\tsoftware",
			wantName: "software",
			wantType: "dir",
			wantSize: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseListLine(tt.line)

			if entry.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", entry.Name, tt.wantName)
			}
			if entry.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", entry.Type, tt.wantType)
			}
			if entry.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", entry.Size, tt.wantSize)
			}
		})
	}
}

func TestParseListLine_Blank(t *testing.T) {
	t.Parallel()
	if entry := ParseListLine("   "); entry != nil {
		t.Errorf("ParseListLine of a blank line = %+v, want nil", entry)
	}
}

func TestParseListLine_Unknown(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		line string
	}{
		{"free text", "total 48"},
		{"truncated unix", "-rw-r--r-- 1 owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseListLine(tt.line)

			if entry.Type != "unknown" {
				t.Errorf("Type = %q, want unknown", entry.Type)
			}
			if entry.Raw != tt.line {
				t.Errorf("Raw = %q, want the original line preserved", entry.Raw)
			}
		})
	}
}
