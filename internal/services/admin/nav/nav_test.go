package nav

import (
	"testing"
)

func TestDefaultSidebarIsValid(t *testing.T) {
	t.Parallel()
	menu, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(menu.Items()) == 0 {
		t.Fatal("expected sidebar items")
	}
}

func TestItemValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		item    Item
		wantErr bool
	}{
		{name: "link", item: Item{Kind: KindLink, Title: "nav.users", URL: "/users"}},
		{name: "link without url", item: Item{Kind: KindLink, Title: "nav.users"}, wantErr: true},
		{name: "link with relative url", item: Item{Kind: KindLink, Title: "nav.users", URL: "users"}, wantErr: true},
		{name: "link with items", item: Item{Kind: KindLink, Title: "nav.users", URL: "/users", Items: []Item{{Kind: KindLink, Title: "x", URL: "/x"}}}, wantErr: true},
		{name: "collapsible", item: Item{Kind: KindCollapsible, Title: "nav.access", Items: []Item{{Kind: KindLink, Title: "nav.users", URL: "/users"}}}},
		{name: "collapsible with url", item: Item{Kind: KindCollapsible, Title: "nav.access", URL: "/a", Items: []Item{{Kind: KindLink, Title: "nav.users", URL: "/users"}}}, wantErr: true},
		{name: "empty collapsible", item: Item{Kind: KindCollapsible, Title: "nav.access"}, wantErr: true},
		{name: "nested collapsible", item: Item{Kind: KindCollapsible, Title: "nav.access", Items: []Item{{Kind: KindCollapsible, Title: "inner", Items: []Item{{Kind: KindLink, Title: "x", URL: "/x"}}}}}, wantErr: true},
		{name: "unknown kind", item: Item{Kind: "button", Title: "x"}, wantErr: true},
		{name: "missing title", item: Item{Kind: KindLink, URL: "/users"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.item.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("items:\n  - kind: link\n    title: a\n    url: /a\n    icon: star\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestResolveMarksActiveItem(t *testing.T) {
	t.Parallel()
	menu, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	views := menu.Resolve("/users/table")
	var (
		usersActive bool
		groupOpen   bool
		promptsOn   bool
	)
	for _, view := range views {
		if view.Kind == KindLink && view.URL == "/prompts" {
			promptsOn = view.Active
		}
		for _, child := range view.Children {
			if child.URL == "/users" {
				usersActive = child.Active
				groupOpen = view.Open
			}
		}
	}
	if !usersActive || !groupOpen {
		t.Fatalf("users active = %v, group open = %v, want both true", usersActive, groupOpen)
	}
	if promptsOn {
		t.Fatal("prompts should not be active on /users/table")
	}
}

func TestMatchesDoesNotTreatPrefixWordsAsChildren(t *testing.T) {
	t.Parallel()
	if matches("/users", "/usersettings") {
		t.Fatal("/usersettings should not match /users")
	}
	if !matches("/", "/") || matches("/", "/users") {
		t.Fatal("root should only match itself")
	}
}
