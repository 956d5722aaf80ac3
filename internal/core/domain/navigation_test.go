package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSortByOrder_StableWithinTies(t *testing.T) {
	cats := []NavigationCategory{
		{ID: "c", SortOrder: 2},
		{ID: "a", SortOrder: 1, Items: []NavigationItem{
			{ID: "i3", SortOrder: 3}, {ID: "i1", SortOrder: 1}, {ID: "i1b", SortOrder: 1},
		}},
		{ID: "b", SortOrder: 2},
	}
	SortByOrder(cats)

	if cats[0].ID != "a" || cats[1].ID != "c" || cats[2].ID != "b" {
		t.Fatalf("unexpected category order: %s %s %s", cats[0].ID, cats[1].ID, cats[2].ID)
	}
	items := cats[0].Items
	if items[0].ID != "i1" || items[1].ID != "i1b" || items[2].ID != "i3" {
		t.Fatalf("unexpected item order: %+v", items)
	}
}

func TestRenumber(t *testing.T) {
	cats := []NavigationCategory{
		{SortOrder: 7, Items: []NavigationItem{{SortOrder: 4}, {SortOrder: 4}}},
		{SortOrder: 0},
	}
	Renumber(cats)
	if cats[0].SortOrder != 1 || cats[1].SortOrder != 2 {
		t.Fatalf("categories not renumbered: %+v", cats)
	}
	if cats[0].Items[0].SortOrder != 1 || cats[0].Items[1].SortOrder != 2 {
		t.Fatalf("items not renumbered: %+v", cats[0].Items)
	}
}

func TestFilterItems(t *testing.T) {
	cats := DefaultNavigations()

	if got := FilterItems(cats, "   "); len(got) != 2 {
		t.Fatalf("blank query must return everything, got %d", len(got))
	}

	got := FilterItems(cats, "AI ASSISTANT")
	if len(got) != 1 || got[0].ID != "tools" || got[0].Items[0].ID != "chatgpt" {
		t.Fatalf("unexpected result: %+v", got)
	}

	if got := FilterItems(cats, "no-such-link"); len(got) != 0 {
		t.Fatalf("expected no categories, got %+v", got)
	}

	if len(cats[0].Items) != 2 {
		t.Fatalf("input was modified")
	}
}

func TestDecodeCategories(t *testing.T) {
	for _, raw := range []string{``, `null`, `{}`, `"x"`, `42`, `[{"name":1}]`} {
		if _, err := DecodeCategories(json.RawMessage(raw)); !errors.Is(err, ErrBadInput) {
			t.Fatalf("%q: expected ErrBadInput, got %v", raw, err)
		}
	}

	cats, err := DecodeCategories(json.RawMessage(` [{"id":"x","name":"X"}]`))
	if err != nil {
		t.Fatalf("DecodeCategories: %v", err)
	}
	if len(cats) != 1 || cats[0].Items == nil {
		t.Fatalf("expected one category with non-nil items, got %+v", cats)
	}

	cats, err = DecodeCategories(json.RawMessage(`[]`))
	if err != nil || cats == nil || len(cats) != 0 {
		t.Fatalf("empty array must decode to empty non-nil slice: %#v %v", cats, err)
	}
}

func TestDefaultNavigations(t *testing.T) {
	cats := DefaultNavigations()
	if len(cats) != 2 || cats[0].Name != "Development" || cats[1].Name != "Tools" {
		t.Fatalf("unexpected defaults: %+v", cats)
	}
	cats[0].Name = "changed"
	if DefaultNavigations()[0].Name != "Development" {
		t.Fatalf("defaults must be a fresh copy")
	}
}
