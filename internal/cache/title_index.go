// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package cache

import (
	"sort"
	"strings"
	"sync"
)

const defaultMaxSuggestions = 10

// TitleMatch is one autocomplete result.
type TitleMatch struct {
	Title      string
	ID         int64
	Popularity float64
}

// titleNode is a prefix-tree node keyed by rune.
type titleNode struct {
	children map[rune]*titleNode
	match    *TitleMatch // set when a title ends here
}

// TitleIndex is a thread-safe prefix tree over movie titles. Keys are
// folded to lower case with runs of whitespace collapsed, so "toy  STORY"
// finds "Toy Story". Suggestions rank by popularity, then title.
type TitleIndex struct {
	mu             sync.RWMutex
	root           *titleNode
	size           int
	maxSuggestions int
}

// NewTitleIndex creates an empty index. maxSuggestions caps Suggest when
// the caller passes no limit.
func NewTitleIndex(maxSuggestions int) *TitleIndex {
	if maxSuggestions <= 0 {
		maxSuggestions = defaultMaxSuggestions
	}
	return &TitleIndex{
		root:           newTitleNode(),
		maxSuggestions: maxSuggestions,
	}
}

func newTitleNode() *titleNode {
	return &titleNode{children: make(map[rune]*titleNode)}
}

// foldTitle produces the lookup key for a title or prefix.
func foldTitle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Add indexes title. When the folded title is already present, the more
// popular movie wins and equal popularity keeps the lower id. It reports
// whether the title was new.
func (ix *TitleIndex) Add(title string, id int64, popularity float64) bool {
	key := foldTitle(title)
	if key == "" {
		return false
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	node := ix.root
	for _, r := range key {
		next := node.children[r]
		if next == nil {
			next = newTitleNode()
			node.children[r] = next
		}
		node = next
	}

	if node.match != nil {
		cur := node.match
		if popularity > cur.Popularity || (popularity == cur.Popularity && id < cur.ID) {
			node.match = &TitleMatch{Title: title, ID: id, Popularity: popularity}
		}
		return false
	}
	node.match = &TitleMatch{Title: title, ID: id, Popularity: popularity}
	ix.size++
	return true
}

// Suggest returns up to limit titles beginning with prefix. A blank
// prefix matches nothing.
func (ix *TitleIndex) Suggest(prefix string, limit int) []TitleMatch {
	key := foldTitle(prefix)
	if key == "" {
		return nil
	}
	if limit <= 0 {
		limit = ix.maxSuggestions
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	node := ix.find(key)
	if node == nil {
		return nil
	}

	var matches []TitleMatch
	collectMatches(node, &matches)

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Popularity != matches[j].Popularity {
			return matches[i].Popularity > matches[j].Popularity
		}
		return matches[i].Title < matches[j].Title
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// find walks key from the root. Callers hold the read lock.
func (ix *TitleIndex) find(key string) *titleNode {
	if key == "" {
		return nil
	}
	node := ix.root
	for _, r := range key {
		node = node.children[r]
		if node == nil {
			return nil
		}
	}
	return node
}

func collectMatches(node *titleNode, out *[]TitleMatch) {
	if node.match != nil {
		*out = append(*out, *node.match)
	}
	for _, child := range node.children {
		collectMatches(child, out)
	}
}

// Len returns the number of distinct folded titles.
func (ix *TitleIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.size
}

// Reset empties the index.
func (ix *TitleIndex) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.root = newTitleNode()
	ix.size = 0
}
