package store

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Transcripts saves conversations as JSON files in a directory. Each file is
// named conversation_<messages>_<unix time>.json and is never overwritten.
// It is safe for concurrent use.
type Transcripts struct {
	mu  sync.RWMutex
	dir string
}

// Entry describes a saved transcript
type Entry struct {
	Name string                `json:"name"`
	Path string                `json:"path"`
	Meta schema.TranscriptMeta `json:"metadata"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	transcriptPrefix = "conversation_"
	maxAttempts      = 100
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTranscripts returns a transcript store in the given directory, which is
// created if it does not exist
func NewTranscripts(dir string) (*Transcripts, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	return &Transcripts{dir: dir}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Dir returns the directory transcripts are saved in
func (t *Transcripts) Dir() string {
	return t.dir
}

// Save writes a transcript and returns the path of the new file
func (t *Transcripts) Save(transcript *schema.Transcript) (string, error) {
	if transcript == nil || transcript.Conversation == nil {
		return "", chatbot.ErrBadParameter.With("transcript has no conversation")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	base := fmt.Sprintf("%s%d_%d", transcriptPrefix, transcript.Metadata.MessageCount, transcript.Metadata.Timestamp.Unix())
	name := base
	for i := 1; i <= maxAttempts; i++ {
		path := jsonPath(t.dir, name)
		if err := writeJSON(path, transcript); err == nil {
			return path, nil
		} else if !errors.Is(err, chatbot.ErrConflict) {
			return "", err
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
	return "", chatbot.ErrConflict.Withf("%s already exists", base)
}

// Load reads a transcript by name. The name may include the .json extension.
func (t *Transcripts) Load(name string) (*schema.Transcript, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), jsonExt)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, chatbot.ErrBadParameter.Withf("invalid transcript name %q", name)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	var transcript schema.Transcript
	if err := readJSON(jsonPath(t.dir, name), name, &transcript); err != nil {
		return nil, err
	}
	if transcript.Conversation == nil {
		return nil, chatbot.ErrBadParameter.Withf("%s: missing conversation", name)
	}
	return &transcript, nil
}

// List returns the saved transcripts, most recent first. Files which cannot
// be read are skipped.
func (t *Transcripts) List() ([]Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names, err := readJSONDir(t.dir, transcriptPrefix)
	if err != nil {
		return nil, err
	}
	result := make([]Entry, 0, len(names))
	for _, name := range names {
		var transcript struct {
			Metadata schema.TranscriptMeta `json:"metadata"`
		}
		path := jsonPath(t.dir, name)
		if err := readJSON(path, name, &transcript); err != nil {
			continue
		}
		result = append(result, Entry{Name: name, Path: path, Meta: transcript.Metadata})
	}
	slices.SortFunc(result, func(a, b Entry) int {
		if c := b.Meta.Timestamp.Compare(a.Meta.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// Delete removes a saved transcript
func (t *Transcripts) Delete(name string) error {
	if _, err := t.Load(name); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := os.Remove(jsonPath(t.dir, strings.TrimSuffix(strings.TrimSpace(name), jsonExt))); err != nil {
		return chatbot.ErrInternalServerError.Withf("remove: %v", err)
	}
	return nil
}
