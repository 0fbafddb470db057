// Package catalog loads the card catalog compiled into the binary.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/mtlprog/sqlgallery/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type file struct {
	Aggregate  string         `yaml:"aggregate"`
	Categories []categoryFile `yaml:"categories"`
}

type categoryFile struct {
	Name  string     `yaml:"name"`
	Cards []cardFile `yaml:"cards"`
}

type cardFile struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Image   string `yaml:"image"`
	Link    string `yaml:"link"`
	Raw     string `yaml:"raw"`
}

// Default returns the embedded catalog.
func Default() (*domain.Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file, or returns the embedded catalog when path is empty.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document. Unknown fields are rejected.
// Cards without an explicit id get one derived from their title; a derived
// id that is already taken gets a numeric suffix ("tba", "tba-2", ...).
// Duplicate explicit ids are still an error.
func Parse(data []byte) (*domain.Catalog, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	taken := make(map[string]bool)
	for _, c := range f.Categories {
		for _, cf := range c.Cards {
			if id := strings.TrimSpace(cf.ID); id != "" {
				taken[id] = true
			}
		}
	}

	categories := make([]domain.Category, 0, len(f.Categories))
	for _, c := range f.Categories {
		cards := make([]domain.Card, 0, len(c.Cards))
		for _, cf := range c.Cards {
			id := strings.TrimSpace(cf.ID)
			if id == "" {
				id = uniqueSlug(Slug(cf.Title), taken)
			}
			cards = append(cards, domain.Card{
				ID:            id,
				ImageSrc:      strings.TrimSpace(cf.Image),
				Title:         strings.TrimSpace(cf.Title),
				Content:       strings.TrimSpace(cf.Content),
				LinkURL:       strings.TrimSpace(cf.Link),
				RawContentURL: strings.TrimSpace(cf.Raw),
			})
		}
		categories = append(categories, domain.Category{Name: c.Name, Cards: cards})
	}

	cat, err := domain.NewCatalog(f.Aggregate, categories)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	return cat, nil
}

func uniqueSlug(base string, taken map[string]bool) string {
	if base == "" {
		return ""
	}
	id := base
	for n := 2; taken[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	taken[id] = true
	return id
}

// Slug lowercases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
