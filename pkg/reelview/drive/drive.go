// Package drive resolves pasted Google Drive share links to file ids
// and maps ids back to playable URLs.
package drive

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	pathIDRegex  = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	queryIDRegex = regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`)
)

// ExtractFileID pulls the Drive file id out of a pasted link. Shapes
// handled, in order:
//
//	https://drive.google.com/file/d/FILE_ID/view
//	https://drive.google.com/open?id=FILE_ID
//	anything containing /d/FILE_ID
//	anything containing id=FILE_ID
//
// Returns "" when no id can be found. Malformed input never errors;
// the regex fallbacks still run on strings that fail URL parsing.
func ExtractFileID(raw string) string {
	// The structured branch only applies to absolute URLs; url.Parse
	// accepts nearly anything, so scheme-less strings go straight to
	// the regex fallbacks.
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		parts := strings.Split(u.Path, "/")
		for i, p := range parts {
			if p == "d" && i+1 < len(parts) && parts[i+1] != "" {
				return parts[i+1]
			}
		}
		if id := u.Query().Get("id"); id != "" {
			return id
		}
	}

	if m := pathIDRegex.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := queryIDRegex.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// StreamURL returns the direct-download URL for a file id. For public
// files this redirects to a stream the <video> tag can play.
func StreamURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/uc?export=download&id=%s", fileID)
}

// PreviewURL returns the embeddable preview frame for a file id, used
// as the fallback when the direct stream fails to load.
func PreviewURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/preview", fileID)
}
