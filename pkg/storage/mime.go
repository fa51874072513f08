package storage

import (
	"bytes"
	"io"
	"net/http"
	"strings"
)

const (
	MIMEOctetStream    = "application/octet-stream"
	mimeDetectionBytes = 512
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXLS  = "application/vnd.ms-excel"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMECSV  = "text/csv"
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEGIF  = "image/gif"
	MIMEBMP  = "image/bmp"
	MIMEWebP = "image/webp"
)

var mimeExtensions = map[string]string{
	MIMEJPEG:        ".jpg",
	MIMEPNG:         ".png",
	MIMEGIF:         ".gif",
	MIMEWebP:        ".webp",
	MIMEBMP:         ".bmp",
	"image/svg+xml": ".svg",
	"image/tiff":    ".tiff",
	"image/heic":    ".heic",
	"image/avif":    ".avif",

	MIMEPDF:           ".pdf",
	MIMEDOC:           ".doc",
	MIMEDOCX:          ".docx",
	MIMEXLS:           ".xls",
	MIMEXLSX:          ".xlsx",
	MIMECSV:           ".csv",
	"text/plain":      ".txt",
	"application/rtf": ".rtf",
}

// ExtFromMIME returns the canonical file extension for a content type.
// Returns "" for unknown types.
func ExtFromMIME(mimeType string) string {
	return mimeExtensions[normalizeMIME(mimeType)]
}

// detectMIMEWithReader sniffs the content type and returns a reader that
// still yields the full body.
func detectMIMEWithReader(r io.Reader) (string, io.ReadSeeker) {
	if rs, ok := r.(io.ReadSeeker); ok {
		buf := make([]byte, mimeDetectionBytes)
		n, _ := io.ReadFull(rs, buf)
		_, _ = rs.Seek(0, io.SeekStart)
		if n > 0 {
			return http.DetectContentType(buf[:n]), rs
		}
		return MIMEOctetStream, rs
	}

	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return MIMEOctetStream, bytes.NewReader(nil)
	}
	return http.DetectContentType(data), bytes.NewReader(data)
}

// normalizeMIME drops parameters and lowercases: "Text/CSV; charset=utf-8" -> "text/csv".
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

func matchesMIME(mimeType string, allowed []string) bool {
	mimeType = normalizeMIME(mimeType)
	if mimeType == "" {
		return false
	}

	for _, pattern := range allowed {
		pattern = strings.TrimSpace(strings.ToLower(pattern))

		if mimeType == pattern {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}
	}

	return false
}
