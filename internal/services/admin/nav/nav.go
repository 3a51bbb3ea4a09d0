// Package nav describes the admin sidebar.
//
// An item is either a link or a collapsible group of links. The schema is
// embedded YAML, validated when loaded.
package nav

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tags the variant of an Item.
type Kind string

const (
	KindLink        Kind = "link"
	KindCollapsible Kind = "collapsible"
)

// Item is one sidebar entry. Title and Badge are message keys.
type Item struct {
	Kind  Kind   `yaml:"kind"`
	Title string `yaml:"title"`
	Badge string `yaml:"badge,omitempty"`
	URL   string `yaml:"url,omitempty"`
	Items []Item `yaml:"items,omitempty"`
}

// Validate checks the variant rules: a link has a URL and no children, a
// collapsible has link children and no URL.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return errors.New("title is required")
	}
	switch i.Kind {
	case KindLink:
		if !strings.HasPrefix(i.URL, "/") {
			return fmt.Errorf("link %q: url must be an absolute path, got %q", i.Title, i.URL)
		}
		if len(i.Items) > 0 {
			return fmt.Errorf("link %q: items are not allowed", i.Title)
		}
	case KindCollapsible:
		if i.URL != "" {
			return fmt.Errorf("collapsible %q: url is not allowed", i.Title)
		}
		if len(i.Items) == 0 {
			return fmt.Errorf("collapsible %q: items are required", i.Title)
		}
		for _, child := range i.Items {
			if child.Kind != KindLink {
				return fmt.Errorf("collapsible %q: child %q must be a link", i.Title, child.Title)
			}
			if err := child.Validate(); err != nil {
				return fmt.Errorf("collapsible %q: %w", i.Title, err)
			}
		}
	default:
		return fmt.Errorf("item %q: unknown kind %q", i.Title, i.Kind)
	}
	return nil
}

// Menu is a validated sidebar.
type Menu struct {
	items []Item
}

// New validates items and returns the menu.
func New(items ...Item) (Menu, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Menu{}, err
		}
	}
	return Menu{items: items}, nil
}

// Parse decodes a YAML sidebar document. Unknown fields are rejected.
func Parse(data []byte) (Menu, error) {
	var doc struct {
		Items []Item `yaml:"items"`
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Menu{}, fmt.Errorf("decode sidebar: %w", err)
	}
	return New(doc.Items...)
}

//go:embed sidebar.yaml
var sidebarYAML []byte

// Default returns the embedded admin sidebar.
func Default() (Menu, error) {
	return Parse(sidebarYAML)
}

// Items returns the top-level items.
func (m Menu) Items() []Item {
	out := make([]Item, len(m.items))
	copy(out, m.items)
	return out
}

// View is an item resolved against the current request path.
type View struct {
	Item
	Active   bool
	Open     bool
	Children []View
}

// Resolve marks the item matching path as active and opens the collapsible
// that contains it.
func (m Menu) Resolve(path string) []View {
	views := make([]View, 0, len(m.items))
	for _, item := range m.items {
		view := View{Item: item}
		switch item.Kind {
		case KindLink:
			view.Active = matches(item.URL, path)
		case KindCollapsible:
			for _, child := range item.Items {
				childView := View{Item: child, Active: matches(child.URL, path)}
				view.Open = view.Open || childView.Active
				view.Children = append(view.Children, childView)
			}
		}
		views = append(views, view)
	}
	return views
}

func matches(url, path string) bool {
	if url == "/" {
		return path == "/"
	}
	return path == url || strings.HasPrefix(path, url+"/")
}
