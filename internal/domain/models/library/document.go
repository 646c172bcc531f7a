package library

import (
	"time"
)

type Document struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"` // Display name, extension stripped: "taxes-2025", not "taxes-2025.pdf"
	Thumbnail Thumbnail `json:"thumbnail"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
