package ftp

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// List requests a directory listing and returns its raw lines. The format
// of each line is server-defined; use ListEntries for a best-effort parsed
// view. An empty path lists the current directory.
func (s *Session) List(path string) ([]string, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	var args []string
	if path != "" {
		args = append(args, path)
	}

	dataConn, err := s.openTransfer("LIST", args...)
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(dataConn)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	scanErr := scanner.Err()

	// The completion reply is read even when scanning failed, so the
	// control channel never ends up with a reply in flight.
	finishErr := s.finishTransfer("LIST", dataConn)

	if scanErr != nil {
		return nil, fmt.Errorf("failed to read directory listing: %w", scanErr)
	}
	if finishErr != nil {
		return nil, finishErr
	}

	return lines, nil
}

// ListEntries requests a directory listing and parses each line with the
// built-in Unix, DOS and EPLF parsers. Lines in an unrecognized format are
// returned as entries of type "unknown" with the raw text preserved.
func (s *Session) ListEntries(path string) ([]*Entry, error) {
	lines, err := s.List(path)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(lines))
	for _, line := range lines {
		if entry := ParseListLine(line); entry != nil {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Retrieve downloads the remote file into w, binary-safe and without
// transcoding. The server signals the end of the file by closing the data
// connection. If the completion reply is missing or negative, the error
// wraps ErrTransferIncomplete and whatever bytes reached w stay there;
// rollback is the caller's business.
func (s *Session) Retrieve(remotePath string, w io.Writer) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	dataConn, err := s.openTransfer("RETR", remotePath)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(w, dataConn)

	finishErr := s.finishTransfer("RETR", dataConn)

	if copyErr != nil {
		return fmt.Errorf("download failed: %w", copyErr)
	}
	return finishErr
}

// Store uploads data from r to the remote path. Closing the data
// connection after the copy is what tells the server the upload is done.
func (s *Session) Store(remotePath string, r io.Reader) error {
	if err := s.beginOp(); err != nil {
		return err
	}
	defer s.endOp()

	dataConn, err := s.openTransfer("STOR", remotePath)
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(dataConn, r)

	finishErr := s.finishTransfer("STOR", dataConn)

	if copyErr != nil {
		return fmt.Errorf("upload failed: %w", copyErr)
	}
	return finishErr
}

// DownloadFile downloads a remote file to a local path.
//
// A failed download may leave a partial file behind; callers that care
// should remove it themselves.
func (s *Session) DownloadFile(remotePath, localPath string) error {
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create local file: %w", err)
	}
	defer f.Close()

	if err := s.Retrieve(remotePath, f); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	return nil
}

// UploadFile uploads a local file to the remote path.
func (s *Session) UploadFile(localPath, remotePath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open local file: %w", err)
	}
	defer f.Close()

	if err := s.Store(remotePath, f); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	return nil
}
