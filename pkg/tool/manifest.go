package tool

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manifest declares a tool in YAML. The template is rendered with the call
// arguments to produce the result.
type Manifest struct {
	schema.ToolSpec `yaml:",inline"`
	Template        string `yaml:"template"`
}

// manifestDir is a source of manifests in a directory
type manifestDir struct {
	path string
}

// templateTool is a tool built from a manifest
type templateTool struct {
	spec schema.ToolSpec
	tmpl *template.Template
}

var _ Source = (*manifestDir)(nil)
var _ Tool = (*templateTool)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var manifestExt = []string{".yaml", ".yml"}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ManifestDir returns a source of the tool manifests in a directory. A
// directory which does not exist provides no candidates.
func ManifestDir(path string) Source {
	return &manifestDir{path: path}
}

// ParseManifest decodes a manifest and builds its tool
func ParseManifest(data []byte) (Tool, error) {
	var manifest Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		return nil, chatbot.ErrBadParameter.Withf("manifest: %v", err)
	}
	return NewTemplateTool(manifest.ToolSpec, manifest.Template)
}

// NewTemplateTool returns a tool which renders text with its arguments
func NewTemplateTool(spec schema.ToolSpec, text string) (Tool, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, chatbot.ErrBadParameter.Withf("%s: template is required", spec.Name)
	}
	tmpl, err := template.New(spec.Name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, chatbot.ErrBadParameter.Withf("%s: %v", spec.Name, err)
	}
	return &templateTool{spec: spec, tmpl: tmpl}, nil
}

///////////////////////////////////////////////////////////////////////////////
// SOURCE

func (d *manifestDir) Name() string {
	return d.path
}

func (d *manifestDir) Candidates(ctx context.Context) ([]Candidate, error) {
	entries, err := os.ReadDir(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, chatbot.ErrInternalServerError.Withf("readdir: %v", err)
	}

	var result []Candidate
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !slices.Contains(manifestExt, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		path := filepath.Join(d.path, entry.Name())
		result = append(result, NewCandidate(entry.Name(), func() (Tool, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, chatbot.ErrInternalServerError.Withf("read: %v", err)
			}
			return ParseManifest(data)
		}))
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL

func (t *templateTool) Spec() schema.ToolSpec {
	return t.spec
}

func (t *templateTool) Execute(_ context.Context, args schema.Args) (string, error) {
	var buf strings.Builder
	if err := t.tmpl.Execute(&buf, map[string]any(args)); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
