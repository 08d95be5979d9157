// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package cache

import (
	"fmt"
	"sync"
	"testing"
)

func newFixtureIndex() *TitleIndex {
	ix := NewTitleIndex(10)
	ix.Add("Toy Story", 862, 21.9)
	ix.Add("Toy Story 2", 863, 17.5)
	ix.Add("Tombstone", 11969, 9.1)
	ix.Add("Top Gun", 744, 19.4)
	ix.Add("Heat", 949, 17.9)
	return ix
}

func TestTitleIndex_Add(t *testing.T) {
	ix := NewTitleIndex(0)

	if !ix.Add("Toy Story", 9999, 5.0) {
		t.Error("first Add should report a new title")
	}
	if ix.Add("toy  story", 862, 21.9) {
		t.Error("Add of the same folded title should not report a new title")
	}
	if ix.Add("   ", 1, 1) {
		t.Error("blank title should be ignored")
	}
	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ix.Len())
	}

	got := ix.Suggest("TOY STORY", 0)
	if len(got) != 1 || got[0].ID != 862 || got[0].Title != "toy  story" {
		t.Fatalf("Suggest() = %+v, want the more popular entry", got)
	}

	ix.Add("Toy Story", 1, 0.5)
	if got := ix.Suggest("toy story", 0); got[0].ID != 862 {
		t.Errorf("less popular duplicate replaced the entry: %+v", got[0])
	}
}

func TestTitleIndex_AddTiePrefersLowerID(t *testing.T) {
	ix := NewTitleIndex(0)
	ix.Add("Heat", 949, 17.9)
	ix.Add("HEAT", 12, 17.9)
	ix.Add("heat", 5000, 17.9)

	got := ix.Suggest("heat", 0)
	if len(got) != 1 || got[0].ID != 12 {
		t.Errorf("Suggest() = %+v, want id 12", got)
	}
}

func TestTitleIndex_Suggest(t *testing.T) {
	ix := newFixtureIndex()

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{"ranked by popularity", "to", 0, []string{"Toy Story", "Top Gun", "Toy Story 2", "Tombstone"}},
		{"limit", "to", 2, []string{"Toy Story", "Top Gun"}},
		{"case and spacing folded", "TOY   st", 0, []string{"Toy Story", "Toy Story 2"}},
		{"exact title", "heat", 0, []string{"Heat"}},
		{"no match", "zzz", 0, nil},
		{"blank prefix", "  ", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.Suggest(tt.prefix, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Suggest(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
			for i := range got {
				if got[i].Title != tt.want[i] {
					t.Errorf("Suggest(%q)[%d] = %q, want %q", tt.prefix, i, got[i].Title, tt.want[i])
				}
			}
		})
	}
}

func TestTitleIndex_SuggestTiesAlphabetical(t *testing.T) {
	ix := NewTitleIndex(10)
	ix.Add("Beta", 2, 1)
	ix.Add("Alpha", 1, 1)

	got := ix.Suggest("", 0)
	if got != nil {
		t.Errorf("Suggest(\"\") = %v, want nil", got)
	}

	ix.Add("Alphaville", 3, 1)
	got = ix.Suggest("al", 0)
	if len(got) != 2 || got[0].Title != "Alpha" || got[1].Title != "Alphaville" {
		t.Errorf("Suggest(al) = %v, want [Alpha Alphaville]", got)
	}
}

func TestTitleIndex_DefaultLimit(t *testing.T) {
	ix := NewTitleIndex(3)
	for i := 0; i < 10; i++ {
		ix.Add(fmt.Sprintf("Saw %d", i), int64(i), float64(i))
	}
	got := ix.Suggest("saw", 0)
	if len(got) != 3 {
		t.Fatalf("len(Suggest) = %d, want 3", len(got))
	}
	if got[0].Title != "Saw 9" {
		t.Errorf("first suggestion = %q, want the most popular", got[0].Title)
	}
}

func TestTitleIndex_Unicode(t *testing.T) {
	ix := NewTitleIndex(10)
	ix.Add("Amélie", 194, 12)
	ix.Add("Ágata", 195, 3)

	if got := ix.Suggest("AMÉ", 0); len(got) != 1 || got[0].ID != 194 {
		t.Errorf("Suggest(AMÉ) = %v", got)
	}
	if got := ix.Suggest("ágata", 0); len(got) != 1 || got[0].ID != 195 {
		t.Errorf("Suggest(ágata) = %v", got)
	}
}

func TestTitleIndex_Reset(t *testing.T) {
	ix := newFixtureIndex()
	ix.Reset()
	if ix.Len() != 0 {
		t.Errorf("Len() after Reset = %d", ix.Len())
	}
	if got := ix.Suggest("to", 0); got != nil {
		t.Errorf("Suggest after Reset = %v", got)
	}
}

func TestTitleIndex_Concurrent(t *testing.T) {
	ix := NewTitleIndex(10)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				ix.Add(fmt.Sprintf("Movie %d-%d", w, i), int64(w*1000+i), float64(i))
				ix.Suggest("movie", 5)
			}
		}(w)
	}
	wg.Wait()

	if ix.Len() != 800 {
		t.Errorf("Len() = %d, want 800", ix.Len())
	}
}
