// Package docs holds the help topics of btx, as markdown.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var topics embed.FS

// All matches every topic in Topics.
const All = "*"

// Topic returns the markdown of a topic.
func Topic(name string) (string, error) {
	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the markdown of several topics, one after the other. All
// expands to every topic but the readme.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			var err error
			if expanded, err = List(); err != nil {
				return "", err
			}
		}
		for _, n := range expanded {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// List returns the names of the topics, sorted, without the readme.
func List() ([]string, error) {
	files, err := fs.Glob(topics, "*.md")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		name := strings.TrimSuffix(path.Base(f), ".md")
		if name != "readme" {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out, nil
}
