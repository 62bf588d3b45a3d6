// Package classify decides whether file content is text or binary and selects
// a fenced-code-block language tag from the file extension.
package classify

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// sniffLength defines the maximum number of bytes read when detecting binary content.
const sniffLength = 8000

// Classification is the outcome of inspecting a file's content.
type Classification int

const (
	// ClassificationText marks content renderable inside a fenced code block.
	ClassificationText Classification = iota
	// ClassificationBinary marks content that is omitted from the document.
	ClassificationBinary
	// ClassificationUnreadable marks files whose content could not be read.
	ClassificationUnreadable
)

// languageTagsByExtension maps lower-case file extensions to fenced-block tags.
var languageTagsByExtension = map[string]string{
	".py":   "python",
	".go":   "go",
	".rs":   "rust",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "tsx",
	".json": "json",
	".html": "html",
	".css":  "css",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".sh":   "bash",
	".sql":  "sql",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".java": "java",
	".rb":   "ruby",
	".xml":  "xml",
}

// languageTagsByBaseName maps well-known extensionless file names to tags.
var languageTagsByBaseName = map[string]string{
	"Makefile":   "make",
	"Dockerfile": "dockerfile",
}

// IsBinary reports whether the provided byte slice appears to contain binary data.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// Classify reads up to sniffLength bytes from the file at path and reports
// whether its content is text or binary. Files that cannot be opened or read
// yield ClassificationUnreadable together with the underlying error; callers
// render the failure inline instead of aborting.
func Classify(path string) (Classification, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return ClassificationUnreadable, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := fileHandle.Read(buffer)
	if readError != nil && readError != io.EOF {
		return ClassificationUnreadable, readError
	}
	if IsBinary(buffer[:bytesRead]) {
		return ClassificationBinary, nil
	}
	return ClassificationText, nil
}

// LanguageTag returns the fenced-code-block language identifier for the file
// at path. Unknown extensions yield an empty tag, producing a plain fence.
func LanguageTag(path string) string {
	baseName := filepath.Base(path)
	if tag, known := languageTagsByBaseName[baseName]; known {
		return tag
	}
	extension := strings.ToLower(filepath.Ext(baseName))
	return languageTagsByExtension[extension]
}
