// Package navigation holds the sidebar menu tree and decides which entries
// are expanded and highlighted.
package navigation

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var menuYAML []byte

// DefaultExpanded is the set of groups open before the user toggles anything.
var DefaultExpanded = []string{"master"}

type Node struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Icon     string `yaml:"icon"`
	Path     string `yaml:"path"`
	Children []Node `yaml:"children"`
}

func (n Node) IsGroup() bool {
	return len(n.Children) > 0
}

type Menu struct {
	Nodes []Node
}

// Parse reads a menu tree and rejects duplicate ids and leaves without a path.
func Parse(data []byte) (*Menu, error) {
	var nodes []Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	seen := make(map[string]bool)
	var check func([]Node) error
	check = func(nodes []Node) error {
		for _, n := range nodes {
			if n.ID == "" {
				return fmt.Errorf("parse menu: node %q has no id", n.Label)
			}
			if seen[n.ID] {
				return fmt.Errorf("parse menu: duplicate id %q", n.ID)
			}
			seen[n.ID] = true
			if !n.IsGroup() && n.Path == "" {
				return fmt.Errorf("parse menu: leaf %q has no path", n.ID)
			}
			if err := check(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(nodes); err != nil {
		return nil, err
	}
	return &Menu{Nodes: nodes}, nil
}

// Default returns the built-in sidebar menu.
func Default() *Menu {
	m, err := Parse(menuYAML)
	if err != nil {
		panic(err)
	}
	return m
}

// Find returns the node with the given id at any depth.
func (m *Menu) Find(id string) (Node, bool) {
	var walk func([]Node) (Node, bool)
	walk = func(nodes []Node) (Node, bool) {
		for _, n := range nodes {
			if n.ID == id {
				return n, true
			}
			if found, ok := walk(n.Children); ok {
				return found, true
			}
		}
		return Node{}, false
	}
	return walk(m.Nodes)
}

// IsActive reports whether path falls under a leaf's path, or under any
// child's path for a group.
func IsActive(n Node, path string) bool {
	if n.Path != "" {
		return strings.HasPrefix(path, n.Path)
	}
	for _, child := range n.Children {
		if IsActive(child, path) {
			return true
		}
	}
	return false
}

// Toggle flips the membership of id in expanded and returns the new set.
func Toggle(expanded []string, id string) []string {
	if i := slices.Index(expanded, id); i >= 0 {
		return slices.Delete(slices.Clone(expanded), i, i+1)
	}
	return append(slices.Clone(expanded), id)
}

// Item is a node prepared for rendering.
type Item struct {
	Node
	Depth    int
	Active   bool
	Expanded bool
	Items    []Item
}

// Build prepares the menu for rendering at path. A nil expanded set means
// DefaultExpanded.
func (m *Menu) Build(path string, expanded []string) []Item {
	if expanded == nil {
		expanded = DefaultExpanded
	}
	var build func([]Node, int) []Item
	build = func(nodes []Node, depth int) []Item {
		items := make([]Item, 0, len(nodes))
		for _, n := range nodes {
			items = append(items, Item{
				Node:     n,
				Depth:    depth,
				Active:   IsActive(n, path),
				Expanded: n.IsGroup() && slices.Contains(expanded, n.ID),
				Items:    build(n.Children, depth+1),
			})
		}
		return items
	}
	return build(m.Nodes, 0)
}
