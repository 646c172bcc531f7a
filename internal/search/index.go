package search

import (
	"sort"
	"strings"
	"sync"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// Relevance weights. A token that equals a query term outranks a token
// that merely starts with it, which outranks a bare substring hit on the
// full name.
const (
	weightExact     = 3
	weightPrefix    = 2
	weightSubstring = 1
)

// Index is an in-memory inverted index over document names. It is a
// derived cache of the document store: rebuilt from scratch at startup
// and extended one document at a time as uploads land. Callers must
// resolve returned ids against the canonical snapshot; the index never
// vouches for existence.
type Index struct {
	mu       sync.RWMutex
	postings map[string][]string // token -> document ids
	names    map[string]string   // document id -> lowercased name
	ids      []string            // document ids in index order
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{
		postings: make(map[string][]string),
		names:    make(map[string]string),
	}
}

// Rebuild discards all index state and indexes the given documents
func (idx *Index) Rebuild(documents []library.Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.postings = make(map[string][]string)
	idx.names = make(map[string]string)
	idx.ids = idx.ids[:0]

	for _, doc := range documents {
		idx.add(doc)
	}
}

// Add indexes a single newly created document without touching existing
// entries. Re-adding an id that is already indexed is a no-op.
func (idx *Index) Add(doc library.Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.add(doc)
}

func (idx *Index) add(doc library.Document) {
	if _, exists := idx.names[doc.ID]; exists {
		return
	}

	idx.names[doc.ID] = strings.ToLower(doc.Name)
	idx.ids = append(idx.ids, doc.ID)

	seen := make(map[string]bool)
	for _, token := range Tokenize(doc.Name) {
		if seen[token] {
			continue
		}
		seen[token] = true
		idx.postings[token] = append(idx.postings[token], doc.ID)
	}
}

// Len returns the number of indexed documents
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// Search returns the ids of documents whose names match the query,
// best match first. An empty or whitespace-only query returns no
// results; callers wanting the unfiltered set should not search at all.
func (idx *Index) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	scores := make(map[string]int)
	for _, term := range Tokenize(q) {
		for _, id := range idx.postings[term] {
			scores[id] += weightExact
		}
		// Linear scan over the token set for prefix hits: fine at
		// personal-library scale.
		for token, ids := range idx.postings {
			if token == term || !strings.HasPrefix(token, term) {
				continue
			}
			for _, id := range ids {
				scores[id] += weightPrefix
			}
		}
	}

	// Substring match over the full name catches queries that span
	// token boundaries, like "tax 2025".
	for id, name := range idx.names {
		if strings.Contains(name, q) {
			scores[id] += weightSubstring
		}
	}

	// Collect in index order so equal scores rank oldest first
	matched := make([]string, 0, len(scores))
	for _, id := range idx.ids {
		if scores[id] > 0 {
			matched = append(matched, id)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return scores[matched[i]] > scores[matched[j]]
	})

	return matched
}
