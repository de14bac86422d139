package vfs

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/types"
)

//go:embed seed.yaml
var seedYAML []byte

type seedItem struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Type    types.ItemType `yaml:"type"`
	Parent  string         `yaml:"parent"`
	Content string         `yaml:"content"`
	Size    int64          `yaml:"size"`
	Icon    string         `yaml:"icon"`
	Mime    string         `yaml:"mime"`
}

// DefaultTree parses the embedded default tree, stamping every item with now
func DefaultTree(now time.Time) ([]types.Item, error) {
	return ParseTree(seedYAML, now)
}

// ParseTree decodes a YAML list of items
func ParseTree(data []byte, now time.Time) ([]types.Item, error) {
	var raw []seedItem
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}

	items := make([]types.Item, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, s := range raw {
		if s.ID == "" {
			return nil, fmt.Errorf("item %d: missing id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("item %q: duplicate id", s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Type != types.ItemFile && s.Type != types.ItemFolder {
			return nil, fmt.Errorf("item %q: unknown type %q", s.ID, s.Type)
		}
		if s.Icon == "" {
			s.Icon = iconFolder
			if s.Type == types.ItemFile {
				s.Icon = IconFor(s.Name)
			}
		}
		items = append(items, types.Item{
			ID:         s.ID,
			Name:       s.Name,
			Type:       s.Type,
			ParentID:   types.Parent(s.Parent),
			Content:    s.Content,
			Size:       s.Size,
			CreatedAt:  now,
			ModifiedAt: now,
			Icon:       s.Icon,
			MimeType:   s.Mime,
		})
	}
	return items, nil
}

// Seed replaces the tree with the default desktop tree
func (m *Manager) Seed() error {
	items, err := DefaultTree(m.now())
	if err != nil {
		return err
	}
	m.Load(items)
	return nil
}
