/*
fstool implements the file_operations tool, which reads, writes, lists and
inspects files under a root directory
*/
package fstool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// fileOperations is a tool rooted at a directory. Paths are relative to
// the root and may not escape it.
type fileOperations struct {
	root string
}

var _ tool.Tool = (*fileOperations)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName = "file_operations"
)

var (
	actions = []any{"read", "write", "list", "info", "exists"}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns the file operations tool rooted at the given directory.
// The root directory must exist.
func New(root string) (tool.Tool, error) {
	// Resolve to absolute path
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, chatbot.ErrBadParameter.Withf("invalid root path: %v", err)
	}

	// Check that the root exists and is a directory
	info, err := os.Stat(abs)
	if err != nil {
		return nil, chatbot.ErrBadParameter.Withf("root path: %v", err)
	}
	if !info.IsDir() {
		return nil, chatbot.ErrBadParameter.Withf("root path is not a directory: %q", abs)
	}

	return &fileOperations{root: abs}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *fileOperations) Spec() schema.ToolSpec {
	return schema.ToolSpec{
		Name: toolName,
		Description: fmt.Sprintf("Perform file operations like reading, writing, listing files, and checking file information. "+
			"Paths are relative to the working directory (%s).", t.root),
		Parameters: []schema.ToolParameter{
			schema.NewParameter("action", schema.TypeString, "The action to perform: 'read', 'write', 'list', 'info', 'exists'", true).WithEnum(actions...),
			schema.NewParameter("filepath", schema.TypeString, "Path to the file or directory", false),
			schema.NewParameter("content", schema.TypeString, "Content to write to the file (for write action)", false),
			schema.NewParameter("directory", schema.TypeString, "Directory to list files from (for list action)", false),
			schema.NewParameter("start_line", schema.TypeInteger, "First line to read (1-based, for read action)", false),
			schema.NewParameter("end_line", schema.TypeInteger, "Last line to read (1-based inclusive, for read action)", false),
		},
	}
}

func (t *fileOperations) Execute(ctx context.Context, args schema.Args) (string, error) {
	path := args.String("filepath")
	switch action := args.String("action"); action {
	case "read":
		if path == "" {
			return "", chatbot.ErrBadParameter.With("filepath parameter required for read action")
		}
		return t.read(path, args.Int("start_line", 0), args.Int("end_line", 0))
	case "write":
		if path == "" || !args.Has("content") {
			return "", chatbot.ErrBadParameter.With("filepath and content parameters required for write action")
		}
		return t.write(path, args.String("content"))
	case "list":
		dir := args.String("directory")
		if dir == "" {
			dir = path
		}
		if dir == "" {
			dir = "."
		}
		return t.list(ctx, dir)
	case "info":
		if path == "" {
			return "", chatbot.ErrBadParameter.With("filepath parameter required for info action")
		}
		return t.info(path)
	case "exists":
		if path == "" {
			return "", chatbot.ErrBadParameter.With("filepath parameter required for exists action")
		}
		return t.exists(path)
	default:
		return "", chatbot.ErrBadParameter.Withf("unknown action %q", action)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// resolve validates a relative path and returns it cleaned. The lexical
// check gives a clear error for traversal; symlinks are confined by open.
func (t *fileOperations) resolve(relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", chatbot.ErrBadParameter.Withf("path %q must be relative", relPath)
	}
	name := filepath.Clean(relPath)
	if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
		return "", chatbot.ErrBadParameter.Withf("path %q escapes root directory", relPath)
	}
	return name, nil
}

// open returns the root directory. Every file access goes through it, so a
// symlink which points outside the root cannot be followed.
func (t *fileOperations) open() (*os.Root, error) {
	root, err := os.OpenRoot(t.root)
	if err != nil {
		return nil, chatbot.ErrInternalServerError.Withf("root: %v", err)
	}
	return root, nil
}

// pathError maps an error from the root onto an error code
func pathError(op, relPath string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return chatbot.ErrNotFound.Withf("%q does not exist", relPath)
	case strings.Contains(err.Error(), "escapes"):
		return chatbot.ErrBadParameter.Withf("path %q escapes root directory", relPath)
	default:
		return chatbot.ErrInternalServerError.Withf("%s: %v", op, err)
	}
}

// list returns the immediate children of a directory, skipping hidden entries
func (t *fileOperations) list(ctx context.Context, relPath string) (string, error) {
	name, err := t.resolve(relPath)
	if err != nil {
		return "", err
	}
	root, err := t.open()
	if err != nil {
		return "", err
	}
	defer root.Close()

	// Check it exists and is a directory
	info, err := root.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", chatbot.ErrNotFound.Withf("directory %q does not exist", relPath)
		}
		return "", pathError("stat", relPath, err)
	}
	if !info.IsDir() {
		return "", chatbot.ErrBadParameter.Withf("%q is not a directory", relPath)
	}

	entries, err := fs.ReadDir(root.FS(), filepath.ToSlash(name))
	if err != nil {
		return "", pathError("readdir", relPath, err)
	}

	var files []string
	for _, entry := range entries {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if isHidden(entry.Name()) {
			continue
		}
		if entry.IsDir() {
			files = append(files, "📁 "+entry.Name()+"/")
		} else {
			files = append(files, "📄 "+entry.Name())
		}
	}
	if len(files) == 0 {
		return fmt.Sprintf("Directory '%s' is empty", relPath), nil
	}

	return fmt.Sprintf("Contents of '%s':\n%s", relPath, strings.Join(files, "\n")), nil
}

// isHidden returns true if the base name starts with a dot
func isHidden(name string) bool {
	return strings.HasPrefix(filepath.Base(name), ".")
}
