// Package render assembles the final Markdown document from the ordered
// entry list produced by the tree walker.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/projmd/projmd/internal/classify"
	"github.com/projmd/projmd/internal/types"
	"github.com/projmd/projmd/internal/utils"
)

const (
	// projectOpenTag and projectCloseTag wrap the whole document.
	projectOpenTag  = "<project>"
	projectCloseTag = "</project>"

	// treeSectionHeading titles the directory diagram section.
	treeSectionHeading = "# Project Structure"
	// contentSectionHeading titles the per-file content section.
	contentSectionHeading = "# File Contents"

	// binaryFileNote replaces the content of binary files.
	binaryFileNote = "_(binary file, not included)_"
	// unreadableFileNoteFormat replaces the content of unreadable files.
	unreadableFileNoteFormat = "_(could not read file: %v)_"
	// oversizedFileNoteFormat replaces the content of files above the size cap.
	oversizedFileNoteFormat = "_(file too large, content omitted: %s)_"
	// symlinkNote replaces the content of symbolic links, which are never followed.
	symlinkNote = "_(symbolic link, not followed)_"

	// treeIndentUnit is the per-depth indentation of the tree diagram.
	treeIndentUnit = "  "

	// minimumFenceLength is the shortest valid Markdown fence.
	minimumFenceLength = 3
)

// Renderer converts tree entries into the final Markdown document.
type Renderer struct {
	// RootPath is the absolute directory the entries were walked from.
	RootPath string
	// MaxFileSizeBytes caps rendered file content; larger files are noted and
	// skipped. Zero means no cap.
	MaxFileSizeBytes int64
	// Warn receives non-fatal per-file problems.
	Warn func(message string)
}

// Render produces the complete document for the provided entries, wrapped in
// project tags, together with aggregate statistics for the console report.
// The output is deterministic for an unchanged tree: entries arrive in stable
// traversal order and every per-file decision depends only on file content.
func (renderer *Renderer) Render(entries []types.TreeEntry) (string, types.DocumentSummary) {
	warn := renderer.Warn
	if warn == nil {
		warn = func(string) {}
	}

	var document strings.Builder
	var summary types.DocumentSummary

	document.WriteString(projectOpenTag + "\n")
	document.WriteString(treeSectionHeading + "\n\n")
	renderer.writeTreeDiagram(&document, entries)
	document.WriteString("\n" + contentSectionHeading + "\n\n")

	for _, entry := range entries {
		switch entry.Kind {
		case types.EntryKindDirectory:
			summary.Directories++
		case types.EntryKindSymlink:
			writeFileHeading(&document, entry.RelativePath)
			document.WriteString(symlinkNote + "\n\n")
		case types.EntryKindFile:
			renderer.writeFileSection(&document, entry, &summary, warn)
		}
	}

	document.WriteString(projectCloseTag + "\n")
	return document.String(), summary
}

// writeTreeDiagram emits one bullet per entry, indented by depth, with
// directories marked distinctly from files.
func (renderer *Renderer) writeTreeDiagram(document *strings.Builder, entries []types.TreeEntry) {
	for _, entry := range entries {
		indentation := strings.Repeat(treeIndentUnit, entry.Depth)
		if entry.IsDir() {
			fmt.Fprintf(document, "%s- **%s/**\n", indentation, entry.Name)
		} else {
			fmt.Fprintf(document, "%s- %s\n", indentation, entry.Name)
		}
	}
}

// writeFileSection emits the heading and content block for a single file entry.
func (renderer *Renderer) writeFileSection(document *strings.Builder, entry types.TreeEntry, summary *types.DocumentSummary, warn func(message string)) {
	writeFileHeading(document, entry.RelativePath)
	summary.TotalBytes += entry.SizeBytes

	absolutePath := filepath.Join(renderer.RootPath, filepath.FromSlash(entry.RelativePath))

	if renderer.MaxFileSizeBytes > 0 && entry.SizeBytes > renderer.MaxFileSizeBytes {
		summary.SkippedFiles++
		fmt.Fprintf(document, oversizedFileNoteFormat+"\n\n", utils.FormatFileSize(entry.SizeBytes))
		return
	}

	classification, classifyError := classify.Classify(absolutePath)
	switch classification {
	case classify.ClassificationUnreadable:
		summary.UnreadableFiles++
		warn(fmt.Sprintf("failed to read %s: %v", absolutePath, classifyError))
		fmt.Fprintf(document, unreadableFileNoteFormat+"\n\n", classifyError)
		return
	case classify.ClassificationBinary:
		summary.BinaryFiles++
		document.WriteString(binaryFileNote + "\n\n")
		return
	}

	fileContent, readError := os.ReadFile(absolutePath)
	if readError != nil {
		summary.UnreadableFiles++
		warn(fmt.Sprintf("failed to read %s: %v", absolutePath, readError))
		fmt.Fprintf(document, unreadableFileNoteFormat+"\n\n", readError)
		return
	}

	summary.TextFiles++
	writeFencedBlock(document, string(fileContent), classify.LanguageTag(entry.RelativePath))
}

// writeFileHeading emits the per-file section heading.
func writeFileHeading(document *strings.Builder, relativePath string) {
	fmt.Fprintf(document, "## %s\n\n", relativePath)
}

// writeFencedBlock emits content inside a fence guaranteed to be longer than
// any backtick run inside the content, so an embedded fence sequence can
// never close the block early.
func writeFencedBlock(document *strings.Builder, content string, languageTag string) {
	fence := fenceFor(content)
	document.WriteString(fence + languageTag + "\n")
	document.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		document.WriteString("\n")
	}
	document.WriteString(fence + "\n\n")
}

// fenceFor returns a backtick fence one longer than the longest backtick run
// in content, and never shorter than the Markdown minimum.
func fenceFor(content string) string {
	longestRun := 0
	currentRun := 0
	for _, character := range content {
		if character == '`' {
			currentRun++
			if currentRun > longestRun {
				longestRun = currentRun
			}
		} else {
			currentRun = 0
		}
	}
	fenceLength := longestRun + 1
	if fenceLength < minimumFenceLength {
		fenceLength = minimumFenceLength
	}
	return strings.Repeat("`", fenceLength)
}
