package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubCounter implements tokenizer.Counter without loading an encoding.
type stubCounter struct {
	exact bool
}

func (counter stubCounter) Name() string {
	if counter.exact {
		return "stub-exact"
	}
	return "stub-approximate"
}

func (counter stubCounter) Exact() bool { return counter.exact }

func (counter stubCounter) CountString(input string) (int, error) {
	return len(strings.Fields(input)), nil
}

// stubCopier records clipboard writes instead of touching the system clipboard.
type stubCopier struct {
	copied    []string
	copyError error
}

func (copier *stubCopier) Copy(text string) error {
	if copier.copyError != nil {
		return copier.copyError
	}
	copier.copied = append(copier.copied, text)
	return nil
}

// buildProject creates a minimal convertible project directory.
func buildProject(t *testing.T) string {
	t.Helper()
	rootDirectory := t.TempDir()
	if makeError := os.Mkdir(filepath.Join(rootDirectory, "src"), 0o755); makeError != nil {
		t.Fatalf("creating src: %v", makeError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "src", "a.py"), []byte("print(1)\n"), 0o644); writeError != nil {
		t.Fatalf("writing src/a.py: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, ".gitignore"), []byte("*.log\n"), 0o644); writeError != nil {
		t.Fatalf("writing .gitignore: %v", writeError)
	}
	if writeError := os.WriteFile(filepath.Join(rootDirectory, "debug.log"), []byte("noise\n"), 0o644); writeError != nil {
		t.Fatalf("writing debug.log: %v", writeError)
	}
	return rootDirectory
}

func TestRunCopiesDocumentAndReportsExactCount(t *testing.T) {
	t.Parallel()

	rootDirectory := buildProject(t)
	copier := &stubCopier{}
	var stdout, stderr bytes.Buffer

	options := runOptions{
		targetDirectory: rootDirectory,
		copyToClipboard: true,
		useGitignore:    true,
	}
	if runError := run(options, stubCounter{exact: true}, copier, &stdout, &stderr); runError != nil {
		t.Fatalf("run returned error: %v", runError)
	}

	if len(copier.copied) != 1 {
		t.Fatalf("expected exactly one clipboard write, got %d", len(copier.copied))
	}
	document := copier.copied[0]
	if !strings.HasPrefix(document, "<project>\n") || !strings.HasSuffix(document, "</project>\n") {
		t.Error("clipboard document must be wrapped in project tags")
	}
	if !strings.Contains(document, "## src/a.py") {
		t.Error("clipboard document must contain the src/a.py section")
	}
	if strings.Contains(document, "debug.log") {
		t.Error("ignored files must not reach the clipboard document")
	}
	if stdout.Len() != 0 {
		t.Error("stdout must stay empty unless --stdout is set")
	}
	report := stderr.String()
	if !strings.Contains(report, "Total tokens in output:") || !strings.Contains(report, "(exact)") {
		t.Errorf("report must label the exact token count, got: %q", report)
	}
	if !strings.Contains(report, "Document copied to the clipboard.") {
		t.Errorf("report must confirm the clipboard copy, got: %q", report)
	}
}

func TestRunLabelsApproximateCounts(t *testing.T) {
	t.Parallel()

	rootDirectory := buildProject(t)
	var stdout, stderr bytes.Buffer

	options := runOptions{targetDirectory: rootDirectory, useGitignore: true}
	if runError := run(options, stubCounter{exact: false}, &stubCopier{}, &stdout, &stderr); runError != nil {
		t.Fatalf("run returned error: %v", runError)
	}
	if !strings.Contains(stderr.String(), "(approximate)") {
		t.Errorf("report must label the approximate token count, got: %q", stderr.String())
	}
}

func TestRunPrintsDocumentToStdoutWhenRequested(t *testing.T) {
	t.Parallel()

	rootDirectory := buildProject(t)
	var stdout, stderr bytes.Buffer

	options := runOptions{targetDirectory: rootDirectory, printToStdout: true, useGitignore: true}
	if runError := run(options, stubCounter{exact: true}, &stubCopier{}, &stdout, &stderr); runError != nil {
		t.Fatalf("run returned error: %v", runError)
	}
	printed := stdout.String()
	if !strings.HasPrefix(printed, "<project>\n") || !strings.HasSuffix(printed, "</project>\n") {
		t.Error("stdout document must be wrapped in project tags")
	}
	if strings.Contains(printed, "Total tokens") {
		t.Error("the console report must not leak into the stdout document")
	}
}

func TestRunSucceedsWhenClipboardFails(t *testing.T) {
	t.Parallel()

	rootDirectory := buildProject(t)
	copier := &stubCopier{copyError: errors.New("no clipboard mechanism")}
	var stdout, stderr bytes.Buffer

	options := runOptions{targetDirectory: rootDirectory, copyToClipboard: true, useGitignore: true}
	if runError := run(options, stubCounter{exact: true}, copier, &stdout, &stderr); runError != nil {
		t.Fatalf("a clipboard failure must not fail the run, got: %v", runError)
	}
	if !strings.Contains(stderr.String(), "clipboard copy failed") {
		t.Errorf("clipboard failure must be reported as a warning, got: %q", stderr.String())
	}
}

func TestExecuteRejectsMissingTargetDirectory(t *testing.T) {
	t.Parallel()

	rootCommand := createRootCommand()
	var combinedOutput bytes.Buffer
	rootCommand.SetOut(&combinedOutput)
	rootCommand.SetErr(&combinedOutput)
	rootCommand.SetArgs([]string{filepath.Join(t.TempDir(), "absent")})

	if executionError := rootCommand.Execute(); executionError == nil {
		t.Error("a missing target directory must produce a non-zero exit")
	}
}

func TestExecuteRejectsFileTarget(t *testing.T) {
	t.Parallel()

	rootDirectory := t.TempDir()
	filePath := filepath.Join(rootDirectory, "plain.txt")
	if writeError := os.WriteFile(filePath, []byte("x\n"), 0o644); writeError != nil {
		t.Fatalf("writing file: %v", writeError)
	}

	rootCommand := createRootCommand()
	var combinedOutput bytes.Buffer
	rootCommand.SetOut(&combinedOutput)
	rootCommand.SetErr(&combinedOutput)
	rootCommand.SetArgs([]string{filePath})

	if executionError := rootCommand.Execute(); executionError == nil {
		t.Error("a non-directory target must produce a non-zero exit")
	}
}

func TestResolveRunOptionsAppliesFileConfiguration(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rootDirectory := buildProject(t)
	configContent := "clipboard: false\nstdout: true\nexclude:\n  - 'src/'\n"
	if writeError := os.WriteFile(filepath.Join(rootDirectory, ".projmd.yaml"), []byte(configContent), 0o644); writeError != nil {
		t.Fatalf("writing configuration: %v", writeError)
	}

	rootCommand := createRootCommand()
	options, optionsError := resolveRunOptions(rootCommand, resolveInputs{
		targetArgument:  rootDirectory,
		copyToClipboard: true,
	})
	if optionsError != nil {
		t.Fatalf("resolveRunOptions returned error: %v", optionsError)
	}
	if options.copyToClipboard {
		t.Error("unset clipboard flag must yield to file configuration")
	}
	if !options.printToStdout {
		t.Error("unset stdout flag must yield to file configuration")
	}
	if len(options.excludePatterns) != 1 || options.excludePatterns[0] != "src/" {
		t.Errorf("excludePatterns = %v, expected [src/]", options.excludePatterns)
	}
}

func TestInterpretClipboardFlagLiteral(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input      string
		expected   bool
		recognized bool
	}{
		{input: "", expected: true, recognized: true},
		{input: "true", expected: true, recognized: true},
		{input: "YES", expected: true, recognized: true},
		{input: "false", expected: false, recognized: true},
		{input: "0", expected: false, recognized: true},
		{input: "maybe", recognized: false},
	}

	for _, testCase := range testCases {
		value, recognized := interpretClipboardFlagLiteral(testCase.input)
		if recognized != testCase.recognized {
			t.Errorf("interpretClipboardFlagLiteral(%q) recognized = %v, expected %v", testCase.input, recognized, testCase.recognized)
			continue
		}
		if recognized && value != testCase.expected {
			t.Errorf("interpretClipboardFlagLiteral(%q) = %v, expected %v", testCase.input, value, testCase.expected)
		}
	}
}
