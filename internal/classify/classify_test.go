package classify_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/projmd/projmd/internal/classify"
)

func TestIsBinary(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{name: "empty content is text", data: nil, expected: false},
		{name: "plain text", data: []byte("package main\n"), expected: false},
		{name: "null byte marks binary", data: []byte("text\x00more"), expected: true},
		{name: "invalid utf8 marks binary", data: []byte{0xff, 0xfe, 0x41}, expected: true},
		{name: "utf8 multibyte is text", data: []byte("héllo wörld"), expected: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if result := classify.IsBinary(testCase.data); result != testCase.expected {
				t.Errorf("IsBinary(%q) = %v, expected %v", testCase.data, result, testCase.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	rootDirectory := t.TempDir()

	textPath := filepath.Join(rootDirectory, "sample.txt")
	if writeError := os.WriteFile(textPath, []byte("hello\n"), 0o644); writeError != nil {
		t.Fatalf("writing text file: %v", writeError)
	}
	// A null byte forces a binary classification regardless of extension.
	disguisedPath := filepath.Join(rootDirectory, "disguised.py")
	if writeError := os.WriteFile(disguisedPath, []byte("print(1)\x00"), 0o644); writeError != nil {
		t.Fatalf("writing disguised binary file: %v", writeError)
	}
	emptyPath := filepath.Join(rootDirectory, "empty.bin")
	if writeError := os.WriteFile(emptyPath, nil, 0o644); writeError != nil {
		t.Fatalf("writing empty file: %v", writeError)
	}

	testCases := []struct {
		name        string
		path        string
		expected    classify.Classification
		expectError bool
	}{
		{name: "text file", path: textPath, expected: classify.ClassificationText},
		{name: "null byte beats extension", path: disguisedPath, expected: classify.ClassificationBinary},
		{name: "empty file is text", path: emptyPath, expected: classify.ClassificationText},
		{name: "missing file is unreadable", path: filepath.Join(rootDirectory, "absent.txt"), expected: classify.ClassificationUnreadable, expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			classification, classifyError := classify.Classify(testCase.path)
			if classification != testCase.expected {
				t.Errorf("Classify(%s) = %v, expected %v", testCase.path, classification, testCase.expected)
			}
			if testCase.expectError && classifyError == nil {
				t.Errorf("Classify(%s) expected an error", testCase.path)
			}
			if !testCase.expectError && classifyError != nil {
				t.Errorf("Classify(%s) returned unexpected error: %v", testCase.path, classifyError)
			}
		})
	}
}

func TestLanguageTag(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "python", path: "src/a.py", expected: "python"},
		{name: "go", path: "cmd/main.go", expected: "go"},
		{name: "rust", path: "lib.rs", expected: "rust"},
		{name: "typescript", path: "app.ts", expected: "typescript"},
		{name: "upper case extension", path: "README.MD", expected: "markdown"},
		{name: "yaml short extension", path: "ci.yml", expected: "yaml"},
		{name: "makefile by name", path: "project/Makefile", expected: "make"},
		{name: "dockerfile by name", path: "Dockerfile", expected: "dockerfile"},
		{name: "unknown extension", path: "notes.abc", expected: ""},
		{name: "no extension", path: "LICENSE", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if tag := classify.LanguageTag(testCase.path); tag != testCase.expected {
				t.Errorf("LanguageTag(%s) = %q, expected %q", testCase.path, tag, testCase.expected)
			}
		})
	}
}

func TestClassifyReadsBoundedPrefix(t *testing.T) {
	t.Parallel()

	// Content far larger than the sniff window stays cheap to classify and
	// must still come back as text when the prefix is clean.
	rootDirectory := t.TempDir()
	largePath := filepath.Join(rootDirectory, "large.txt")
	if writeError := os.WriteFile(largePath, []byte(strings.Repeat("line of text\n", 10000)), 0o644); writeError != nil {
		t.Fatalf("writing large file: %v", writeError)
	}
	classification, classifyError := classify.Classify(largePath)
	if classifyError != nil {
		t.Fatalf("Classify returned error: %v", classifyError)
	}
	if classification != classify.ClassificationText {
		t.Errorf("Classify(large text) = %v, expected text", classification)
	}
}
