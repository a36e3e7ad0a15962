package fstool

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// maxReadSize is the maximum file size which can be read or written
	maxReadSize = 1 << 20

	// sniffSize is the number of bytes used to detect content type
	sniffSize = 512
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// read returns the text contents of a file, optionally restricted to a
// range of lines
func (t *fileOperations) read(relPath string, startLine, endLine int) (string, error) {
	// Validate line numbers
	if startLine < 0 || endLine < 0 {
		return "", chatbot.ErrBadParameter.With("start_line and end_line must be >= 1")
	}
	if startLine > 0 && endLine > 0 && startLine > endLine {
		return "", chatbot.ErrBadParameter.With("start_line must be <= end_line")
	}

	name, err := t.resolve(relPath)
	if err != nil {
		return "", err
	}
	root, err := t.open()
	if err != nil {
		return "", err
	}
	defer root.Close()

	// Stat the file
	info, err := root.Stat(name)
	if err != nil {
		return "", pathError("stat", relPath, err)
	}
	if info.IsDir() {
		return "", chatbot.ErrBadParameter.Withf("path %q is a directory, not a file", relPath)
	}
	if info.Size() > maxReadSize {
		return "", chatbot.ErrBadParameter.Withf("file is too large (%d bytes, max %d)", info.Size(), maxReadSize)
	}

	// Read the file
	data, err := root.ReadFile(name)
	if err != nil {
		return "", pathError("read", relPath, err)
	}
	if isBinary(data) {
		return "", chatbot.ErrBadParameter.Withf("file %q appears to be binary", relPath)
	}

	// Whole file
	if startLine == 0 && endLine == 0 {
		return fmt.Sprintf("File content of '%s':\n%s", relPath, data), nil
	}

	// Clamp the range to the lines in the file
	lines := splitLines(data)
	if startLine == 0 {
		startLine = 1
	}
	if endLine == 0 || endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		startLine = endLine
	}

	return fmt.Sprintf("File content of '%s' (lines %d-%d of %d):\n%s", relPath, startLine, endLine, len(lines), strings.Join(lines[startLine-1:endLine], "\n")), nil
}

// write replaces the contents of a file, creating parent directories
func (t *fileOperations) write(relPath, content string) (string, error) {
	if len(content) > maxReadSize {
		return "", chatbot.ErrBadParameter.Withf("content is too large (%d bytes, max %d)", len(content), maxReadSize)
	}

	name, err := t.resolve(relPath)
	if err != nil {
		return "", err
	}
	if name == "." {
		return "", chatbot.ErrBadParameter.With("cannot write to the root directory")
	}
	root, err := t.open()
	if err != nil {
		return "", err
	}
	defer root.Close()

	if info, err := root.Stat(name); err == nil && info.IsDir() {
		return "", chatbot.ErrBadParameter.Withf("path %q is a directory, not a file", relPath)
	}

	// Create the directory and write the file
	if dir := filepath.Dir(name); dir != "." {
		if err := root.MkdirAll(dir, 0o755); err != nil {
			return "", pathError("mkdir", relPath, err)
		}
	}
	if err := root.WriteFile(name, []byte(content), 0o644); err != nil {
		return "", pathError("write", relPath, err)
	}

	return fmt.Sprintf("Successfully wrote content to '%s'", relPath), nil
}

// isBinary returns true if the data appears to be binary, sniffing the
// first 512 bytes
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if len(data) > sniffSize {
		data = data[:sniffSize]
	}

	// Null bytes are a strong binary signal
	if bytes.ContainsRune(data, 0) {
		return true
	}

	mt, _, _ := strings.Cut(http.DetectContentType(data), ";")
	switch {
	case strings.HasPrefix(mt, "text/"):
		return false
	case mt == "application/json":
		return false
	case mt == "application/xml":
		return false
	default:
		return true
	}
}

// splitLines splits data into lines, handling \n and \r\n line endings
func splitLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
