package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBodyPart = "word/document.xml"

// maxDocxBodyBytes caps the decompressed size of word/document.xml
var maxDocxBodyBytes int64 = 32 << 20

// extractDocx reads the WordprocessingML body of a .docx archive. Paragraphs
// and breaks become newlines and tabs are kept.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid docx archive: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("no word/document.xml found in docx")
	}

	if body.UncompressedSize64 > uint64(maxDocxBodyBytes) {
		return "", fmt.Errorf("%s declares %d bytes: %w", docxBodyPart, body.UncompressedSize64, ErrDocumentTooLarge)
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", docxBodyPart, err)
	}
	defer func() { _ = rc.Close() }()

	lr := &io.LimitedReader{R: rc, N: maxDocxBodyBytes + 1}
	text, err := wordprocessingText(lr)
	if lr.N <= 0 {
		return "", fmt.Errorf("%s is over %d bytes: %w", docxBodyPart, maxDocxBodyBytes, ErrDocumentTooLarge)
	}
	return text, err
}

func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return sb.String(), nil
}
