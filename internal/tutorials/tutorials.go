package tutorials

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var content embed.FS

// Tutorial is one embedded guide.
type Tutorial struct {
	ID      string
	Title   string
	Summary string
	Order   int
	Body    string // Markdown without the front matter
}

type frontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Order   int    `yaml:"order"`
}

var delimiter = []byte("---")

// parse splits a document into its YAML front matter and markdown body.
func parse(id string, data []byte) (Tutorial, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(data, delimiter) {
		return Tutorial{ID: id, Title: id, Body: string(data)}, nil
	}

	rest := data[len(delimiter):]
	end := bytes.Index(rest, append([]byte("\n"), delimiter...))
	if end < 0 {
		return Tutorial{}, fmt.Errorf("tutorial %s: unterminated front matter", id)
	}

	var fm frontMatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return Tutorial{}, fmt.Errorf("tutorial %s: invalid front matter: %w", id, err)
	}
	if fm.Title == "" {
		fm.Title = id
	}

	body := rest[end+1+len(delimiter):]
	return Tutorial{
		ID:      id,
		Title:   fm.Title,
		Summary: fm.Summary,
		Order:   fm.Order,
		Body:    strings.TrimLeft(string(body), "\r\n"),
	}, nil
}

// Load reads every tutorial in fsys matching content/*.md, ordered by
// their order field and then ID.
func Load(fsys fs.FS) ([]Tutorial, error) {
	files, err := fs.Glob(fsys, "content/*.md")
	if err != nil {
		return nil, err
	}

	out := make([]Tutorial, 0, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		t, err := parse(strings.TrimSuffix(path.Base(name), ".md"), data)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// All returns the built-in tutorials. It panics if the embedded content is
// malformed, which the package tests rule out.
func All() []Tutorial {
	list, err := Load(content)
	if err != nil {
		panic(err)
	}
	return list
}

// Find returns the built-in tutorial with id.
func Find(id string) (Tutorial, bool) {
	for _, t := range All() {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}
