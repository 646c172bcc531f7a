package library

// AllCollectionID is the id of the synthetic collection holding every
// document. Its membership is derived from the document set at read time;
// whatever is persisted under this id is a cache, never trusted.
const AllCollectionID = "all"

type Collection struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	DocumentIDs []string `json:"document_ids" db:"document_ids"` // membership set, each id at most once
}

// Contains reports whether docID is already a member.
func (c *Collection) Contains(docID string) bool {
	for _, id := range c.DocumentIDs {
		if id == docID {
			return true
		}
	}
	return false
}

// WithDocument returns a copy of the collection whose membership includes
// docID. Adding an existing member returns an unchanged copy, keeping
// assignment idempotent.
func (c *Collection) WithDocument(docID string) *Collection {
	members := make([]string, len(c.DocumentIDs), len(c.DocumentIDs)+1)
	copy(members, c.DocumentIDs)
	if !c.Contains(docID) {
		members = append(members, docID)
	}
	return &Collection{
		ID:          c.ID,
		Name:        c.Name,
		DocumentIDs: members,
	}
}

// IsSynthetic reports whether this is the derived "all" collection.
func (c *Collection) IsSynthetic() bool {
	return c.ID == AllCollectionID
}
