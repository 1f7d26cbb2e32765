package executor

import (
	"mime"
	"sort"
	"strings"
)

// Document describes a stored file as reported by the server. One descriptor
// is produced per operation.
type Document struct {
	ID       string
	URI      string
	MimeType string
	Size     int64
	Tags     map[string]string
}

// Tag keys set on descriptors.
const (
	TagFileURL     = "file_url"
	TagExternalURL = "external_url"
)

// Common types get a fixed extension so upload names stay stable across
// platforms; mime.ExtensionsByType ordering depends on the host's mime tables.
var preferredExtensions = map[string]string{
	"image/jpeg":       ".jpg",
	"image/png":        ".png",
	"image/gif":        ".gif",
	"text/plain":       ".txt",
	"text/html":        ".html",
	"application/json": ".json",
	"application/pdf":  ".pdf",
}

func extensionForType(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ""
	}
	if ext, ok := preferredExtensions[mt]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mt)
	if err != nil || len(exts) == 0 {
		return ""
	}
	sort.Strings(exts)
	return exts[0]
}

// externalURL joins the external base with a server-relative path.
func externalURL(externalHost, relPath string) string {
	return strings.TrimRight(externalHost, "/") + "/" + strings.TrimLeft(relPath, "/")
}
