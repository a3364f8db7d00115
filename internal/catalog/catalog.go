// Package catalog describes the games offered to players.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CategoryAll selects every game.
const CategoryAll = "all"

// Category is a filter tab.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Entry is one game card.
type Entry struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Icon        string `yaml:"icon" json:"icon"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description" json:"description"`
}

type document struct {
	Categories []Category `yaml:"categories"`
	Games      []Entry    `yaml:"games"`
}

var (
	once    sync.Once
	doc     document
	loadErr error
)

func load() (document, error) {
	once.Do(func() {
		if err := yaml.Unmarshal(catalogYAML, &doc); err != nil {
			loadErr = fmt.Errorf("parse catalog: %w", err)
		}
	})
	return doc, loadErr
}

func mustLoad() document {
	d, err := load()
	if err != nil {
		panic(err)
	}
	return d
}

// Categories returns the filter tabs in display order.
func Categories() []Category {
	return append([]Category(nil), mustLoad().Categories...)
}

// All returns every entry in catalog order.
func All() []Entry {
	return append([]Entry(nil), mustLoad().Games...)
}

// Filter returns entries in category. "all" and "" return everything.
func Filter(category string) []Entry {
	if category == "" || category == CategoryAll {
		return All()
	}
	var out []Entry
	for _, e := range mustLoad().Games {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Search matches query against titles and descriptions, ignoring case.
// An empty query matches everything.
func Search(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) {
			out = append(out, e)
		}
	}
	return out
}

// Lookup finds an entry by game ID.
func Lookup(id string) (Entry, bool) {
	for _, e := range mustLoad().Games {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
