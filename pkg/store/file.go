package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	jsonExt              = ".json"
	DirPerm  os.FileMode = 0o700 // Directory permission for transcript directories
	FilePerm os.FileMode = 0o600 // File permission for transcript files
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS - FILE UTILITIES

// ensureDir validates that dir is non-empty and creates it if needed.
func ensureDir(dir string) error {
	if dir == "" {
		return chatbot.ErrBadParameter.With("directory is required")
	}
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return chatbot.ErrInternalServerError.Withf("mkdir: %v", err)
	}
	return nil
}

// writeJSON serialises v to a new JSON file at the given path. An existing
// file is never overwritten.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return chatbot.ErrInternalServerError.Withf("marshal: %v", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePerm)
	if os.IsExist(err) {
		return chatbot.ErrConflict.Withf("%s already exists", filepath.Base(path))
	} else if err != nil {
		return chatbot.ErrInternalServerError.Withf("write: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return chatbot.ErrInternalServerError.Withf("write: %v", err)
	}
	return nil
}

// readJSON deserialises a JSON file into v. Returns ErrNotFound when the
// file does not exist, using label to identify the missing resource.
func readJSON(path string, label string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return chatbot.ErrNotFound.Withf("%s", label)
		}
		return chatbot.ErrInternalServerError.Withf("read: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return chatbot.ErrBadParameter.Withf("%s: %v", label, err)
	}
	return nil
}

// readJSONDir returns the names (without .json extension) of all JSON files
// in dir with the given prefix, skipping subdirectories
func readJSONDir(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, chatbot.ErrInternalServerError.Withf("readdir: %v", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), jsonExt) || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), jsonExt))
	}
	return names, nil
}

// jsonPath returns the file path for a name in the given directory.
func jsonPath(dir, name string) string {
	return filepath.Join(dir, name+jsonExt)
}
