package fstool

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// Packages
	humanize "github.com/dustin/go-humanize"
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	timeFormat = "2006-01-02 15:04:05"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// info returns the size, modification time, type and MIME type of a path
func (t *fileOperations) info(relPath string) (string, error) {
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
		if errors.Is(err, fs.ErrNotExist) {
			return "", chatbot.ErrNotFound.Withf("file %q does not exist", relPath)
		}
		return "", pathError("stat", relPath, err)
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "File Information for '%s':\n", relPath)
	fmt.Fprintf(&buf, "- Size: %s\n", humanize.Bytes(uint64(info.Size())))
	fmt.Fprintf(&buf, "- Modified: %s (%s)\n", info.ModTime().Format(timeFormat), humanize.Time(info.ModTime()))
	if info.IsDir() {
		buf.WriteString("- Type: Directory")
	} else {
		buf.WriteString("- Type: File\n")
		fmt.Fprintf(&buf, "- MIME Type: %s", detectMimeType(root, name))
	}

	return buf.String(), nil
}

// exists reports whether a path exists under the root
func (t *fileOperations) exists(relPath string) (string, error) {
	name, err := t.resolve(relPath)
	if err != nil {
		return "", err
	}
	root, err := t.open()
	if err != nil {
		return "", err
	}
	defer root.Close()

	if _, err := root.Stat(name); err == nil {
		return fmt.Sprintf("File '%s' exists", relPath), nil
	} else if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("File '%s' does not exist", relPath), nil
	} else {
		return "", pathError("stat", relPath, err)
	}
}

// detectMimeType returns the MIME type for a file. It first tries extension-based
// detection, then falls back to content sniffing.
func detectMimeType(root *os.Root, name string) string {
	if ext := filepath.Ext(name); ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return mt
		}
	}

	// Fall back to content sniffing (reads first 512 bytes)
	f, err := root.Open(name)
	if err != nil {
		return "application/octet-stream"
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := f.Read(buf)
	if err != nil || n == 0 {
		return "application/octet-stream"
	}

	return http.DetectContentType(buf[:n])
}
