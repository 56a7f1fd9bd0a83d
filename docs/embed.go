// Package docs contains the long-form guides bundled with the ntnk binary.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed guide
var FS embed.FS

// Topics lists the bundled guide names, sorted.
func Topics() []string {
	entries, err := fs.ReadDir(FS, "guide")
	if err != nil {
		return nil
	}
	var topics []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			topics = append(topics, strings.TrimSuffix(e.Name(), ".md"))
		}
	}
	sort.Strings(topics)
	return topics
}

// Read returns the markdown of a guide topic.
func Read(topic string) (string, error) {
	data, err := FS.ReadFile(path.Join("guide", topic+".md"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
