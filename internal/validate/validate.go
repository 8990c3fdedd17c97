// Package validate guards the path and type inputs of the drop API.
//
// X-system names, entity types and uploaded filenames all end up as path
// segments under the drop directory, so the identifier grammar here is the
// sole defense against path traversal.
package validate

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"regexp"
	"sort"
	"strings"
)

// PathPattern is the grammar for x-system names, entity types and
// multipart filenames. It rules out path separators and "..".
const PathPattern = `^[A-Za-z0-9._-]{1,128}$`

var pathRegex = regexp.MustCompile(PathPattern)

// Validation errors. Handlers map these to HTTP status codes.
var (
	ErrInvalidIdentifier = errors.New("identifier does not match " + PathPattern)
	ErrUnsupportedType   = errors.New("unsupported content type")
	ErrTypeMismatch      = errors.New("content type does not match file extension")
	ErrDuplicateFilename = errors.New("duplicate filename")
)

// AllowedContentTypes maps each supported upload content type to the
// extension its payload is stored with. One extension per type.
var AllowedContentTypes = map[string]string{
	"application/json":         ".json",
	"application/xml":          ".xml",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"text/csv":                  ".csv",
	"text/tab-separated-values": ".tsv",
}

// AllowedTypeList returns the supported content types, sorted, for use in
// error details and API docs.
func AllowedTypeList() []string {
	types := make([]string, 0, len(AllowedContentTypes))
	for contentType := range AllowedContentTypes {
		types = append(types, contentType)
	}
	sort.Strings(types)
	return types
}

// Identifier checks a value against the path grammar.
func Identifier(value string) error {
	if !pathRegex.MatchString(value) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, value)
	}
	return nil
}

// ExtensionFor returns the storage extension for a declared content type.
// Media type parameters such as "; charset=utf-8" are ignored.
func ExtensionFor(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	ext, ok := AllowedContentTypes[mediaType]
	if !ok {
		return "", fmt.Errorf("%w: %q, allowed types: %s",
			ErrUnsupportedType, mediaType, strings.Join(AllowedTypeList(), ", "))
	}
	return ext, nil
}

// FileExtension checks that a multipart file's declared content type is
// consistent with its filename extension. ".csv" additionally accepts
// "application/vnd.ms-excel", which some clients send for CSV exports.
func FileExtension(contentType, filename string) error {
	expected, err := ExtensionFor(contentType)
	if err != nil {
		return err
	}
	suffix := path.Ext(filename)
	if suffix == expected {
		return nil
	}
	if suffix == ".csv" {
		mediaType, _, _ := mime.ParseMediaType(contentType)
		if mediaType == "text/csv" || mediaType == "application/vnd.ms-excel" {
			return nil
		}
	}
	return fmt.Errorf("%w: %s != %s", ErrTypeMismatch, contentType, filename)
}

// DuplicateFilenames rejects a batch in which two files share a name,
// so that last-write-wins inside a single request cannot pass silently.
func DuplicateFilenames(filenames []string) error {
	seen := make(map[string]struct{}, len(filenames))
	for _, name := range filenames {
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateFilename, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
