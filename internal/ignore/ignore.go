// Package ignore loads gitignore-style rule files and decides which
// root-relative paths are excluded from traversal.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/projmd/projmd/internal/utils"
)

const (
	commentPrefix  = "#"
	negationPrefix = "!"
	escapePrefix   = `\`
)

// selfExcludedNames lists entries the tool always skips regardless of rule
// files, so the generated document never includes version-control internals
// or the tool's own configuration.
var selfExcludedNames = map[string]struct{}{
	utils.GitDirectoryName:          {},
	utils.PythonCacheDirectoryName:  {},
	utils.ConfigFileName:            {},
	utils.GlobalConfigDirectoryName: {},
}

// Rule is a single compiled ignore pattern. Negated rules re-include paths
// that an earlier rule excluded.
type Rule struct {
	Expression    *regexp.Regexp
	Negated       bool
	DirectoryOnly bool
	SourceLine    string
}

// RuleSet is an ordered collection of ignore rules. Later rules override
// earlier ones for a matching path, mirroring gitignore semantics.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet returns an empty rule set. It still enforces the built-in
// self-exclusions.
func NewRuleSet() *RuleSet {
	return &RuleSet{}
}

// LoadRuleSet reads the .gitignore file at rootPath, when present, and appends
// any extraPatterns after the file rules. A missing ignore file yields an
// empty rule set and no error; read failures are returned so the caller can
// degrade to an empty set with a warning.
func LoadRuleSet(rootPath string, useGitignore bool, extraPatterns []string) (*RuleSet, error) {
	ruleSet := NewRuleSet()

	if useGitignore {
		ignoreFilePath := filepath.Join(rootPath, utils.GitIgnoreFileName)
		fileHandle, openError := os.Open(ignoreFilePath)
		if openError != nil {
			if !os.IsNotExist(openError) {
				return ruleSet, openError
			}
		} else {
			scanner := bufio.NewScanner(fileHandle)
			for scanner.Scan() {
				ruleSet.AddPatternLine(scanner.Text())
			}
			scanError := scanner.Err()
			closeError := fileHandle.Close()
			if scanError != nil {
				return ruleSet, scanError
			}
			if closeError != nil {
				return ruleSet, closeError
			}
		}
	}

	for _, patternLine := range extraPatterns {
		ruleSet.AddPatternLine(patternLine)
	}

	return ruleSet, nil
}

// AddPatternLine parses one ignore-file line and appends the resulting rule.
// Blank lines, comments, and patterns that fail to compile are skipped.
func (ruleSet *RuleSet) AddPatternLine(line string) {
	compiledRule, parsed := parsePatternLine(line)
	if parsed {
		ruleSet.rules = append(ruleSet.rules, compiledRule)
	}
}

// RuleCount returns the number of loaded rules, excluding built-in self-exclusions.
func (ruleSet *RuleSet) RuleCount() int {
	return len(ruleSet.rules)
}

// Matches reports whether the root-relative path should be excluded from
// traversal. The last rule matching the path decides; a negated rule
// re-includes it. Built-in self-exclusions always win and cannot be negated.
func (ruleSet *RuleSet) Matches(relativePath string, isDirectory bool) bool {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(relativePath), "./")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	pathSegments := strings.Split(normalizedPath, "/")
	lastSegment := pathSegments[len(pathSegments)-1]
	if _, selfExcluded := selfExcludedNames[lastSegment]; selfExcluded {
		return true
	}

	candidates := []string{normalizedPath}
	if isDirectory {
		candidates = append(candidates, normalizedPath+"/")
	}

	ignored := false
	for _, rule := range ruleSet.rules {
		if rule.DirectoryOnly && !isDirectory {
			// A directory pattern covers a file only through one of its
			// ancestor directories, never through the file's own name.
			for segmentIndex := 1; segmentIndex < len(pathSegments); segmentIndex++ {
				ancestorPath := strings.Join(pathSegments[:segmentIndex], "/") + "/"
				if rule.Expression.MatchString(ancestorPath) {
					ignored = !rule.Negated
					break
				}
			}
			continue
		}
		for _, candidatePath := range candidates {
			if rule.Expression.MatchString(candidatePath) {
				ignored = !rule.Negated
				break
			}
		}
	}
	return ignored
}

// parsePatternLine converts one ignore-file line into a compiled rule.
// The second return value is false when the line carries no pattern.
func parsePatternLine(line string) (Rule, bool) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
		return Rule{}, false
	}

	negated := false
	if strings.HasPrefix(trimmedLine, negationPrefix) {
		negated = true
		trimmedLine = strings.TrimPrefix(trimmedLine, negationPrefix)
	}

	if strings.HasPrefix(trimmedLine, escapePrefix+commentPrefix) || strings.HasPrefix(trimmedLine, escapePrefix+negationPrefix) {
		trimmedLine = trimmedLine[1:]
	}

	directoryOnly := strings.HasSuffix(trimmedLine, "/")

	expressionText := escapeRegexSpecialCharacters(trimmedLine)
	expressionText = expandDoubleStarPatterns(expressionText)
	expressionText = convertWildcardsToRegex(expressionText)
	expressionText = anchorPattern(expressionText, trimmedLine)

	compiledExpression, compileError := regexp.Compile(expressionText)
	if compileError != nil {
		return Rule{}, false
	}

	return Rule{
		Expression:    compiledExpression,
		Negated:       negated,
		DirectoryOnly: directoryOnly,
		SourceLine:    line,
	}, true
}

// escapeRegexSpecialCharacters escapes regex metacharacters except `*`, `?`, and `/`.
func escapeRegexSpecialCharacters(pattern string) string {
	specialCharacters := `.+()|^$[]{}`
	for _, character := range specialCharacters {
		pattern = strings.ReplaceAll(pattern, string(character), escapePrefix+string(character))
	}
	return pattern
}

// Placeholders keep `**` expansions out of reach of the single-star
// conversion; they are restored to regex text after wildcards are rewritten.
const (
	doubleStarMiddleToken   = "\x00"
	doubleStarTrailingToken = "\x01"
	doubleStarLeadingToken  = "\x02"
)

// expandDoubleStarPatterns replaces `**` segments with placeholder tokens.
func expandDoubleStarPatterns(pattern string) string {
	pattern = regexp.MustCompile(`/\*\*/`).ReplaceAllString(pattern, doubleStarMiddleToken)
	pattern = regexp.MustCompile(`/\*\*$`).ReplaceAllString(pattern, doubleStarTrailingToken)
	pattern = regexp.MustCompile(`^\*\*/`).ReplaceAllString(pattern, doubleStarLeadingToken)
	return pattern
}

// convertWildcardsToRegex rewrites `*` and `?` wildcards into regex
// equivalents, then restores the `**` placeholder tokens.
func convertWildcardsToRegex(pattern string) string {
	pattern = regexp.MustCompile(`\*`).ReplaceAllString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", "[^/]")
	pattern = strings.ReplaceAll(pattern, doubleStarMiddleToken, `(/|/.+/)`)
	pattern = strings.ReplaceAll(pattern, doubleStarTrailingToken, `(/.*)?`)
	return strings.ReplaceAll(pattern, doubleStarLeadingToken, `(.*/)?`)
}

// anchorPattern anchors the expression so it matches the full relative path.
// Patterns containing a slash are anchored at the root; bare names match at
// any depth, per gitignore convention.
func anchorPattern(pattern string, originalPattern string) string {
	if strings.HasSuffix(originalPattern, "/") {
		pattern += "(|.*)$"
	} else {
		pattern += "(|/.*)$"
	}

	if strings.HasPrefix(pattern, "/") {
		return "^" + strings.TrimPrefix(pattern, "/")
	}
	trimmedOriginal := strings.TrimSuffix(originalPattern, "/")
	if strings.Contains(trimmedOriginal, "/") {
		return "^" + pattern
	}
	return "^(|.*/)" + pattern
}
