package fstool_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	fstool "github.com/mutablelogic/go-chatbot/pkg/fstool"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

// Helper to create the tool rooted at a temporary directory
func newTool(t *testing.T) (tool.Tool, string) {
	t.Helper()
	dir := t.TempDir()
	fs, err := fstool.New(dir)
	require.NoError(t, err)
	return fs, dir
}

// Helper to run the tool
func run(t *testing.T, fs tool.Tool, args schema.Args) string {
	t.Helper()
	result, err := fs.Execute(context.TODO(), args)
	require.NoError(t, err)
	return result
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE TESTS

// Test New with a valid directory
func Test_fstool_001(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)
	spec := fs.Spec()
	assert.Equal("file_operations", spec.Name)
	assert.Equal([]string{"action"}, spec.Required())
	assert.Contains(spec.Description, dir)
	assert.NoError(spec.Validate())
}

// Test New with a non-existent directory or a file
func Test_fstool_002(t *testing.T) {
	assert := assert.New(t)
	_, err := fstool.New("/nonexistent/path/xyz")
	assert.ErrorIs(err, chatbot.ErrBadParameter)

	f := filepath.Join(t.TempDir(), "file.txt")
	os.WriteFile(f, []byte("hello"), 0o600)
	_, err = fstool.New(f)
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

///////////////////////////////////////////////////////////////////////////////
// READ AND WRITE TESTS

// Test write creates directories, read returns the content
func Test_fstool_003(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)

	result := run(t, fs, schema.Args{"action": "write", "filepath": "notes/today.txt", "content": "line one\nline two\nline three\n"})
	assert.Equal("Successfully wrote content to 'notes/today.txt'", result)
	_, err := os.Stat(filepath.Join(dir, "notes", "today.txt"))
	assert.NoError(err)

	result = run(t, fs, schema.Args{"action": "read", "filepath": "notes/today.txt"})
	assert.Equal("File content of 'notes/today.txt':\nline one\nline two\nline three\n", result)

	result = run(t, fs, schema.Args{"action": "read", "filepath": "notes/today.txt", "start_line": 2, "end_line": 9})
	assert.Equal("File content of 'notes/today.txt' (lines 2-3 of 3):\nline two\nline three", result)
}

// Test write and read failures
func Test_fstool_004(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)
	os.WriteFile(filepath.Join(dir, "image.bin"), []byte{0x00, 0x01, 0x02, 0xFF}, 0o600)
	os.Mkdir(filepath.Join(dir, "subdir"), 0o700)

	tests := []schema.Args{
		{"action": "read"},
		{"action": "read", "filepath": "missing.txt"},
		{"action": "read", "filepath": "image.bin"},
		{"action": "read", "filepath": "subdir"},
		{"action": "write", "filepath": "a.txt"},
		{"action": "write", "filepath": "subdir", "content": "x"},
		{"action": "info"},
		{"action": "exists"},
		{"action": "delete", "filepath": "a.txt"},
	}
	for _, args := range tests {
		_, err := fs.Execute(context.TODO(), args)
		assert.Error(err, args)
	}

	_, err := fs.Execute(context.TODO(), schema.Args{"action": "read", "filepath": "missing.txt"})
	assert.ErrorIs(err, chatbot.ErrNotFound)
}

///////////////////////////////////////////////////////////////////////////////
// TRAVERSAL TESTS

// Test paths may not escape the root
func Test_fstool_005(t *testing.T) {
	assert := assert.New(t)
	fs, _ := newTool(t)

	for _, path := range []string{"../../../etc/passwd", "..", "/etc/passwd", "a/../../b"} {
		for _, action := range []string{"read", "info", "exists"} {
			_, err := fs.Execute(context.TODO(), schema.Args{"action": action, "filepath": path})
			assert.ErrorIs(err, chatbot.ErrBadParameter, action+" "+path)
		}
		_, err := fs.Execute(context.TODO(), schema.Args{"action": "write", "filepath": path, "content": "x"})
		assert.ErrorIs(err, chatbot.ErrBadParameter, path)
		_, err = fs.Execute(context.TODO(), schema.Args{"action": "list", "directory": path})
		assert.ErrorIs(err, chatbot.ErrBadParameter, path)
	}
}

///////////////////////////////////////////////////////////////////////////////
// LIST TESTS

// Test listing files and directories, skipping hidden entries
func Test_fstool_006(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)

	result := run(t, fs, schema.Args{"action": "list"})
	assert.Equal("Directory '.' is empty", result)

	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("aaa"), 0o600)
	os.WriteFile(filepath.Join(dir, ".hidden"), []byte("h"), 0o600)
	os.Mkdir(filepath.Join(dir, "subdir"), 0o700)
	os.WriteFile(filepath.Join(dir, "subdir", "b.txt"), []byte("b"), 0o600)

	result = run(t, fs, schema.Args{"action": "list"})
	assert.Equal("Contents of '.':\n📄 a.txt\n📁 subdir/", result)

	result = run(t, fs, schema.Args{"action": "list", "directory": "subdir"})
	assert.Equal("Contents of 'subdir':\n📄 b.txt", result)

	_, err := fs.Execute(context.TODO(), schema.Args{"action": "list", "directory": "nope"})
	assert.ErrorIs(err, chatbot.ErrNotFound)

	_, err = fs.Execute(context.TODO(), schema.Args{"action": "list", "directory": "a.txt"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)
}

///////////////////////////////////////////////////////////////////////////////
// INFO AND EXISTS TESTS

// Test file info for a file and a directory
func Test_fstool_007(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)
	os.WriteFile(filepath.Join(dir, "data.json"), []byte(`{"key":"value"}`), 0o600)
	os.Mkdir(filepath.Join(dir, "subdir"), 0o700)

	result := run(t, fs, schema.Args{"action": "info", "filepath": "data.json"})
	assert.Contains(result, "File Information for 'data.json':")
	assert.Contains(result, "- Size: 15 B")
	assert.Contains(result, "- Type: File")
	assert.Contains(result, "json")

	result = run(t, fs, schema.Args{"action": "info", "filepath": "subdir"})
	assert.Contains(result, "- Type: Directory")
	assert.NotContains(result, "MIME")
}

// Test exists
func Test_fstool_008(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)
	os.WriteFile(filepath.Join(dir, "here.txt"), []byte("x"), 0o600)

	assert.Equal("File 'here.txt' exists", run(t, fs, schema.Args{"action": "exists", "filepath": "here.txt"}))
	assert.Equal("File 'gone.txt' does not exist", run(t, fs, schema.Args{"action": "exists", "filepath": "gone.txt"}))
}

// Test a symlink inside the root cannot reach a directory outside it
func Test_fstool_009(t *testing.T) {
	assert := assert.New(t)
	fs, dir := newTool(t)

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("TOP SECRET"), 0o600))
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skip("symlinks not supported:", err)
	}

	result, err := fs.Execute(context.TODO(), schema.Args{"action": "read", "filepath": "link/secret.txt"})
	assert.ErrorIs(err, chatbot.ErrBadParameter)
	assert.NotContains(result, "TOP SECRET")

	_, err = fs.Execute(context.TODO(), schema.Args{"action": "write", "filepath": "link/pwned.txt", "content": "x"})
	assert.Error(err)
	_, err = os.Stat(filepath.Join(outside, "pwned.txt"))
	assert.True(os.IsNotExist(err))

	_, err = fs.Execute(context.TODO(), schema.Args{"action": "list", "directory": "link"})
	assert.Error(err)

	// A symlink which stays inside the root is followed
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.txt"), []byte("inside"), 0o600))
	require.NoError(t, os.Symlink("real.txt", filepath.Join(dir, "alias.txt")))
	assert.Equal("File content of 'alias.txt':\ninside", run(t, fs, schema.Args{"action": "read", "filepath": "alias.txt"}))
}
