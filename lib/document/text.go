package documenthandler

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/pkg/errors"
)

// maxTextLen caps the extracted text kept on the document.
const maxTextLen = 64 * 1024

var supportedExt = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".rtf":  true,
	".odt":  true,
	".txt":  true,
}

func isSupported(fileName string) bool {
	return supportedExt[strings.ToLower(filepath.Ext(fileName))]
}

// mimeType prefers the type derived from the extension, browsers often send octet-stream.
func mimeType(fileName, contentType string) string {
	if byExt := docconv.MimeTypeByExtension(fileName); byExt != "application/octet-stream" {
		return byExt
	}
	if contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// ExtractText returns the plain text of a resume or letter.
func ExtractText(fileName, contentType string, body []byte) (string, error) {
	var text string
	if strings.ToLower(filepath.Ext(fileName)) == ".txt" {
		if !utf8.Valid(body) {
			return "", errors.New("text file is not utf-8")
		}
		text = string(body)
	} else {
		res, err := docconv.Convert(bytes.NewReader(body), mimeType(fileName, contentType), true)
		if err != nil {
			return "", errors.Wrap(err, "document conversion failed")
		}
		text = res.Body
	}
	text = strings.TrimSpace(text)
	if len(text) > maxTextLen {
		text = text[:maxTextLen]
		for !utf8.ValidString(text) {
			text = text[:len(text)-1]
		}
	}
	return text, nil
}
