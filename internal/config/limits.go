package config

const (
	// MaxCollectionNameLength is the maximum length for collection names.
	// Limited to 255 to provide reasonable UX (names should be short and
	// descriptive).
	MaxCollectionNameLength = 255

	// MaxUploadFiles is the maximum number of files accepted in a single
	// upload request. Uploads beyond this are rejected at the boundary
	// before any file is processed.
	MaxUploadFiles = 50

	// MaxFileBytes is the maximum size of a single uploaded file.
	// 50 MB comfortably covers scanned multi-page PDFs while keeping a
	// whole upload batch in memory.
	MaxFileBytes = 50 << 20

	// MaxUploadWorkers bounds how many files of one batch are thumbnailed
	// and persisted concurrently.
	MaxUploadWorkers = 4
)
