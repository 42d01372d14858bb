package extract

import (
	"bytes"
	"fmt"
	"io"

	pdf "github.com/ledongthuc/pdf"
)

// extractPDF returns the plain text layer of a PDF. Scanned PDFs without a
// text layer yield empty text.
func extractPDF(data []byte) (text string, err error) {
	// the reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}
