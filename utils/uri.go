package utils

import (
	"net/url"
	"path/filepath"
	"strings"
)

// NormalizeURI ensures uri has a proper scheme, converting bare filesystem
// paths to file:// URIs via FilePathToURI. URIs with any other scheme pass
// through unchanged.
func NormalizeURI(uri string) string {
	if strings.Contains(uri, "://") {
		return uri
	}
	return FilePathToURI(uri)
}

// URIToFilePath converts a file:// URI back to a local filesystem path,
// undoing percent-encoding and the Windows triple-slash drive-letter form.
func URIToFilePath(uri string) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}
	rest := strings.TrimPrefix(uri, "file://")
	if decoded, err := url.PathUnescape(rest); err == nil {
		rest = decoded
	}
	// file:///C:/... -> rest is "/C:/..."; strip the leading slash in front
	// of the drive letter so filepath.FromSlash yields "C:\...".
	if len(rest) >= 3 && rest[0] == '/' && rest[2] == ':' {
		rest = rest[1:]
	}
	return filepath.FromSlash(rest)
}

// FilePathToURI converts an absolute or relative filesystem path to the
// canonical file:// form required by the Data Model invariant: the
// canonical, absolute, percent-encoded path, with the three-slash
// file:///C:/... form on drive-letter platforms.
func FilePathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}

	hasDriveLetter := func(p string) bool {
		return len(p) >= 2 && p[1] == ':' &&
			((p[0] >= 'A' && p[0] <= 'Z') || (p[0] >= 'a' && p[0] <= 'z'))
	}

	// On platforms without volume names filepath.Abs would treat a
	// drive-letter path as relative, so such a path is kept as given.
	if !hasDriveLetter(path) || filepath.VolumeName(path) != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	slashPath := filepath.ToSlash(path)
	if hasDriveLetter(slashPath) {
		return "file:///" + encodePathSegments(strings.ReplaceAll(slashPath, `\`, "/"))
	}

	if !strings.HasPrefix(slashPath, "/") {
		slashPath = "/" + slashPath
	}
	return "file://" + encodePathSegmentsKeepLeading(slashPath)
}

// encodePathSegments percent-encodes each "/"-separated segment of a path
// that does not itself begin with a leading slash (used for the drive-
// letter form, where the leading "file:///" already supplies the slash
// before the drive letter).
func encodePathSegments(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// encodePathSegmentsKeepLeading percent-encodes each segment of an absolute
// path (leading "/") while preserving that leading slash.
func encodePathSegmentsKeepLeading(p string) string {
	if !strings.HasPrefix(p, "/") {
		return encodePathSegments(p)
	}
	return "/" + encodePathSegments(strings.TrimPrefix(p, "/"))
}
