package thumbnail

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// inspectPDF returns the page count of a PDF, or 0 when the bytes cannot
// be read as one. Only the cross reference table is inspected; page
// content is never rasterized, the preview stays the static placeholder.
func inspectPDF(content []byte) int {
	conf := api.LoadConfiguration()
	count, err := api.PageCount(bytes.NewReader(content), conf)
	if err != nil {
		return 0
	}
	return count
}
