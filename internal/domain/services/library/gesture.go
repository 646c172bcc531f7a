package library

// DropGesture is the command value for a completed drag-and-drop: the
// user dragged SourceID and released it over TargetID. It carries no
// rendering-framework baggage; the presentation layer constructs one and
// hands it to the coordinator synchronously.
type DropGesture struct {
	SourceID string // dragged document id
	TargetID string // drop target collection id
}

// IsSelfDrop reports whether the gesture dropped an item onto itself
func (g DropGesture) IsSelfDrop() bool {
	return g.SourceID == g.TargetID
}
