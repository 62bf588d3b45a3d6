// Package types defines the cross-package data structures used by the projmd CLI.
package types

// Entry kinds produced by the tree walker.
const (
	EntryKindDirectory = "directory"
	EntryKindFile      = "file"
	EntryKindSymlink   = "symlink"
)

// TreeEntry represents one filesystem node discovered during traversal.
// RelativePath is slash-separated and relative to the traversal root.
type TreeEntry struct {
	RelativePath string
	Name         string
	Kind         string
	Depth        int
	SizeBytes    int64
}

// IsDir reports whether the entry represents a directory.
func (entry TreeEntry) IsDir() bool {
	return entry.Kind == EntryKindDirectory
}

// TokenReport captures the token count of the rendered document together with
// the counting method that produced it.
type TokenReport struct {
	Tokens     int
	MethodName string
	Exact      bool
}

// DocumentSummary aggregates per-run statistics for the console report.
type DocumentSummary struct {
	TextFiles       int
	BinaryFiles     int
	UnreadableFiles int
	SkippedFiles    int
	Directories     int
	TotalBytes      int64
}
