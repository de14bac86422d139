package vfs

import (
	"encoding/base64"
	"path"
	"strings"
)

// MimeTextPlain is the mime type of any content that is not a data URI
const MimeTextPlain = "text/plain"

const (
	iconFolder   = "📁"
	iconDocument = "📄"
)

var extensionIcons = map[string]string{
	"txt":  "📄",
	"pdf":  "📕",
	"doc":  "📄",
	"docx": "📄",
	"jpg":  "🖼️",
	"jpeg": "🖼️",
	"png":  "🖼️",
	"gif":  "🖼️",
	"mp3":  "🎵",
	"wav":  "🎵",
	"mp4":  "🎬",
	"mov":  "🎬",
	"zip":  "📦",
	"rar":  "📦",
	"js":   "💻",
	"ts":   "💻",
	"html": "💻",
	"css":  "💻",
}

// IconFor picks a display icon from the file extension
func IconFor(name string) string {
	if icon, ok := extensionIcons[Extension(name)]; ok {
		return icon
	}
	return iconDocument
}

// Extension returns the lowercased extension of name without the dot
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// IsDataURI reports whether content is an inline data URI
func IsDataURI(content string) bool {
	return strings.HasPrefix(content, "data:")
}

// Measure returns the size and mime type recorded for content.
// Data URIs are sized by their base64 payload, floor(len*0.75); anything
// else by its byte length with mime text/plain.
func Measure(content string) (size int64, mime string) {
	if !IsDataURI(content) {
		return int64(len(content)), MimeTextPlain
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(content, "data:"), ",")
	mime, _, _ = strings.Cut(header, ";")
	if !ok {
		return 0, mime
	}
	return int64(len(payload)) * 3 / 4, mime
}

// EncodeDataURI renders data as a base64 data URI
func EncodeDataURI(mime string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}
