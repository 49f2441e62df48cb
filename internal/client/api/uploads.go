package api

import "strings"

const (
	// apiSuffix is the path prefix the API is mounted under.
	apiSuffix = "/api"
	// uploadsMarker starts every site-relative URL of an uploaded file.
	uploadsMarker = "/uploads"
)

// UploadsBase strips the API suffix from base so that uploaded files, which
// the server serves from the site root, can be addressed.
func UploadsBase(base string) string {
	base = strings.TrimRight(base, "/")
	return strings.TrimSuffix(base, apiSuffix)
}

// ResolveUploadURL turns a site-relative upload path into an absolute URL.
// Absolute URLs and paths outside the uploads tree are returned unchanged.
func ResolveUploadURL(base, u string) string {
	if !strings.HasPrefix(u, uploadsMarker) {
		return u
	}
	return UploadsBase(base) + u
}
