package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifier(t *testing.T) {
	valid := []string{
		"acme",
		"test_system",
		"a",
		"data-2024.v1",
		"UPPER.lower_mixed-123",
		strings.Repeat("x", 128),
	}
	for _, v := range valid {
		assert.NoError(t, Identifier(v), v)
	}

	invalid := []string{
		"",
		"..",
		"../etc/passwd",
		"a/b",
		"a\\b",
		"a b",
		"a%b",
		"ünïcode",
		strings.Repeat("x", 129),
	}
	for _, v := range invalid {
		err := Identifier(v)
		assert.True(t, errors.Is(err, ErrInvalidIdentifier), v)
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"application/json":         ".json",
		"application/xml":          ".xml",
		"application/vnd.ms-excel": ".xls",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
		"text/csv":                  ".csv",
		"text/tab-separated-values": ".tsv",
	}
	for contentType, want := range cases {
		ext, err := ExtensionFor(contentType)
		require.NoError(t, err, contentType)
		assert.Equal(t, want, ext)
	}

	ext, err := ExtensionFor("application/json; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, ".json", ext)

	for _, contentType := range []string{"", "text/plain", "application/octet-stream", "text/xml"} {
		_, err := ExtensionFor(contentType)
		assert.True(t, errors.Is(err, ErrUnsupportedType), contentType)
	}
}

func TestFileExtension(t *testing.T) {
	require.NoError(t, FileExtension("text/csv", "data.csv"))
	require.NoError(t, FileExtension("application/vnd.ms-excel", "data.csv"))
	require.NoError(t, FileExtension("application/vnd.ms-excel", "data.xls"))
	require.NoError(t, FileExtension("application/json", "data.json"))

	err := FileExtension("text/csv", "virus.exe")
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	err = FileExtension("application/json", "data.csv")
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	err = FileExtension("application/octet-stream", "data.bin")
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestDuplicateFilenames(t *testing.T) {
	require.NoError(t, DuplicateFilenames([]string{"a.csv", "b.csv"}))
	require.NoError(t, DuplicateFilenames(nil))

	err := DuplicateFilenames([]string{"a.csv", "b.csv", "a.csv"})
	assert.True(t, errors.Is(err, ErrDuplicateFilename))
}
