package router

import (
	"errors"
	"strings"
)

// CanonicalizePath normalizes a URL path before matching.
// It rejects backslashes and null bytes, forces a leading slash,
// collapses duplicate slashes, and strips the trailing slash (except
// for the root path).
func CanonicalizePath(path string) (canonPath, query string, changed bool, err error) {
	if path == "" {
		return "/", "", true, nil
	}

	canonPath, query, _ = strings.Cut(path, "?")

	if strings.Contains(canonPath, "\\") {
		return "", "", false, errors.New("path contains backslash")
	}
	if strings.Contains(canonPath, "\x00") {
		return "", "", false, errors.New("path contains null byte")
	}

	original := canonPath

	if !strings.HasPrefix(canonPath, "/") {
		canonPath = "/" + canonPath
	}

	for strings.Contains(canonPath, "//") {
		canonPath = strings.ReplaceAll(canonPath, "//", "/")
	}

	if len(canonPath) > 1 && strings.HasSuffix(canonPath, "/") {
		canonPath = strings.TrimSuffix(canonPath, "/")
	}

	return canonPath, query, canonPath != original, nil
}

// splitPath splits a canonical path into non-empty segments.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
