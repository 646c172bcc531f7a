package library

// FileKind classifies an uploaded file for preview purposes. The set is
// closed: anything that is not a decodable image or a well-formed PDF is
// KindOther.
type FileKind string

const (
	KindImage FileKind = "image"
	KindPDF   FileKind = "pdf"
	KindOther FileKind = "other"
)

// Thumbnail is the rendered preview handle attached to a document.
// PNG always holds a fixed-size raster; generation never fails, so it is
// never empty once a document exists.
type Thumbnail struct {
	Kind  FileKind `json:"kind" db:"kind"`
	Pages int      `json:"pages,omitempty" db:"pages"` // PDF page count, 0 for other kinds
	PNG   []byte   `json:"-" db:"png"`
}
