package ftp

import "io"

// ProgressReader wraps an io.Reader and reports cumulative bytes read via a
// callback. Wrap an upload source with it to observe Store progress.
type ProgressReader struct {
	// Reader is the underlying reader
	Reader io.Reader

	// Callback is invoked after each Read with the total bytes so far
	Callback func(bytesTransferred int64)

	total int64
}

// Read implements io.Reader.
func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.Reader.Read(p)
	pr.total += int64(n)
	if pr.Callback != nil && n > 0 {
		pr.Callback(pr.total)
	}
	return n, err
}

// ProgressWriter wraps an io.Writer and reports cumulative bytes written
// via a callback. Wrap a download sink with it to observe Retrieve
// progress.
type ProgressWriter struct {
	// Writer is the underlying writer
	Writer io.Writer

	// Callback is invoked after each Write with the total bytes so far
	Callback func(bytesTransferred int64)

	total int64
}

// Write implements io.Writer.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.total += int64(n)
	if pw.Callback != nil && n > 0 {
		pw.Callback(pw.total)
	}
	return n, err
}
