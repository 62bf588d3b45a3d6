// Package walk enumerates a directory tree in deterministic depth-first order,
// pruning entries matched by the ignore rule set.
package walk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/projmd/projmd/internal/ignore"
	"github.com/projmd/projmd/internal/types"
)

const (
	// errorReadRootFormat reports a failure to read the traversal root.
	errorReadRootFormat = "reading directory %s: %w"
	// warningReadDirectoryFormat reports a subdirectory that could not be read.
	warningReadDirectoryFormat = "skipping directory %s: %v"
	// warningStatEntryFormat reports an entry whose metadata could not be retrieved.
	warningStatEntryFormat = "unable to stat %s: %v"
)

// pendingEntry is one node waiting on the traversal work stack.
type pendingEntry struct {
	absolutePath string
	relativePath string
	name         string
	kind         string
	depth        int
	sizeBytes    int64
}

// Walk enumerates rootPath and returns its visible entries in depth-first
// preorder. Children at each level appear in lexicographic name order, so the
// result is stable across runs on an unchanged tree. Symbolic links are
// recorded as leaf entries and never followed, which keeps the traversal
// finite even on symlink-cyclic trees. Traversal uses an explicit work stack
// instead of call recursion. The warn callback receives non-fatal problems
// such as unreadable subdirectories.
func Walk(rootPath string, ruleSet *ignore.RuleSet, warn func(message string)) ([]types.TreeEntry, error) {
	if warn == nil {
		warn = func(string) {}
	}

	stack, rootExpansionError := expandDirectory(rootPath, "", 0, ruleSet, warn)
	if rootExpansionError != nil {
		return nil, fmt.Errorf(errorReadRootFormat, rootPath, rootExpansionError)
	}

	var collected []types.TreeEntry
	for len(stack) > 0 {
		currentEntry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		collected = append(collected, types.TreeEntry{
			RelativePath: currentEntry.relativePath,
			Name:         currentEntry.name,
			Kind:         currentEntry.kind,
			Depth:        currentEntry.depth,
			SizeBytes:    currentEntry.sizeBytes,
		})

		if currentEntry.kind != types.EntryKindDirectory {
			continue
		}
		childEntries, expansionError := expandDirectory(currentEntry.absolutePath, currentEntry.relativePath, currentEntry.depth+1, ruleSet, warn)
		if expansionError != nil {
			warn(fmt.Sprintf(warningReadDirectoryFormat, currentEntry.absolutePath, expansionError))
			continue
		}
		stack = append(stack, childEntries...)
	}

	return collected, nil
}

// expandDirectory reads one directory level and returns its visible children
// in reverse lexicographic order, so that popping them off the work stack
// yields lexicographic traversal.
func expandDirectory(absolutePath string, relativePath string, depth int, ruleSet *ignore.RuleSet, warn func(message string)) ([]pendingEntry, error) {
	directoryEntries, readError := os.ReadDir(absolutePath)
	if readError != nil {
		return nil, readError
	}

	var pending []pendingEntry
	for entryIndex := len(directoryEntries) - 1; entryIndex >= 0; entryIndex-- {
		directoryEntry := directoryEntries[entryIndex]
		entryName := directoryEntry.Name()

		childRelativePath := entryName
		if relativePath != "" {
			childRelativePath = relativePath + "/" + entryName
		}

		entryKind := types.EntryKindFile
		if directoryEntry.Type()&fs.ModeSymlink != 0 {
			entryKind = types.EntryKindSymlink
		} else if directoryEntry.IsDir() {
			entryKind = types.EntryKindDirectory
		}

		if ruleSet.Matches(childRelativePath, entryKind == types.EntryKindDirectory) {
			continue
		}

		var sizeBytes int64
		if entryKind == types.EntryKindFile {
			entryInformation, informationError := directoryEntry.Info()
			if informationError != nil {
				warn(fmt.Sprintf(warningStatEntryFormat, filepath.Join(absolutePath, entryName), informationError))
			} else {
				sizeBytes = entryInformation.Size()
			}
		}

		pending = append(pending, pendingEntry{
			absolutePath: filepath.Join(absolutePath, entryName),
			relativePath: childRelativePath,
			name:         entryName,
			kind:         entryKind,
			depth:        depth,
			sizeBytes:    sizeBytes,
		})
	}

	return pending, nil
}
