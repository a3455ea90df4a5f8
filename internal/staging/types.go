package staging

import (
	"path/filepath"
	"strings"
)

// DocumentKind classifies a staged document. Unknown kinds never enter the
// staged set.
type DocumentKind string

const (
	KindPDF     DocumentKind = "pdf"
	KindText    DocumentKind = "txt"
	KindCSV     DocumentKind = "csv"
	KindJSON    DocumentKind = "json"
	KindLink    DocumentKind = "wiki"
	KindUnknown DocumentKind = "unknown"
)

// KindForFile maps a filename to its kind by extension, case-insensitively.
func KindForFile(name string) DocumentKind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "pdf":
		return KindPDF
	case "txt":
		return KindText
	case "csv":
		return KindCSV
	case "json":
		return KindJSON
	default:
		return KindUnknown
	}
}

// KindFromRemote maps the server's document type string to a kind.
func KindFromRemote(remoteType, name string) DocumentKind {
	if remoteType == "wiki" {
		return KindLink
	}
	if k := KindForFile(name); k != KindUnknown {
		return k
	}
	return DocumentKind(remoteType)
}

// Document is one entry of the staged set.
type Document struct {
	Name string
	Kind DocumentKind
}
