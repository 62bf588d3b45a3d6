package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const unknownVersion = "unknown"

// GetApplicationVersion resolves the projmd version string. Module build info
// wins when the binary was built from a tagged module; otherwise a git
// describe of the surrounding checkout is attempted before giving up.
func GetApplicationVersion() string {
	if buildInfo, available := debug.ReadBuildInfo(); available {
		moduleVersion := buildInfo.Main.Version
		if moduleVersion != "" && moduleVersion != "(devel)" {
			return moduleVersion
		}
	}

	repositoryRoot := locateRepositoryRoot(".")
	if repositoryRoot == "" {
		return unknownVersion
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		describeCommand := exec.Command("git", arguments...)
		describeCommand.Dir = repositoryRoot
		if output, describeError := describeCommand.Output(); describeError == nil && len(output) > 0 {
			return strings.TrimSpace(string(output))
		}
	}
	return unknownVersion
}

// locateRepositoryRoot walks upward from startDirectory looking for a .git
// directory and returns the containing directory, or "" when none exists.
func locateRepositoryRoot(startDirectory string) string {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return ""
	}
	for {
		gitPath := filepath.Join(currentDirectory, GitDirectoryName)
		if information, statError := os.Stat(gitPath); statError == nil && information.IsDir() {
			return currentDirectory
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return ""
		}
		currentDirectory = parentDirectory
	}
}
