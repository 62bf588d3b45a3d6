// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/projmd/projmd/internal/config"
	"github.com/projmd/projmd/internal/ignore"
	"github.com/projmd/projmd/internal/render"
	"github.com/projmd/projmd/internal/services/clipboard"
	"github.com/projmd/projmd/internal/tokenizer"
	"github.com/projmd/projmd/internal/utils"
	"github.com/projmd/projmd/internal/walk"
)

const (
	rootUse              = "projmd [directory]"
	rootShortDescription = "convert a project directory into a single Markdown document"
	rootLongDescription  = `projmd walks a project directory, applies .gitignore rules, and renders the
tree plus every text file into one Markdown document wrapped in <project> tags.
The document is copied to the system clipboard for pasting into a chat LLM
interface, and the token count of the result is reported.`
	rootUsageExample = `  # Convert the current directory and copy the result to the clipboard
  projmd

  # Convert another directory and print the document to stdout
  projmd --stdout ~/code/myproject

  # Exclude extra patterns on top of .gitignore
  projmd -e 'dist/' -e '*.lock'`

	stdoutFlagName      = "stdout"
	clipboardFlagName   = "clipboard"
	excludeFlagName     = "exclude"
	excludeFlagShort    = "e"
	noGitignoreFlagName = "no-gitignore"
	maxFileSizeFlagName = "max-file-size"
	configFlagName      = "config"
	versionFlagName     = "version"

	stdoutFlagDescription      = "print the generated document to standard output"
	clipboardFlagDescription   = "copy the generated document to the system clipboard"
	excludeFlagDescription     = "additional ignore pattern (repeatable)"
	noGitignoreFlagDescription = "do not read .gitignore"
	maxFileSizeFlagDescription = "skip content of files larger than this many bytes"
	configFlagDescription      = "path to a configuration file"
	versionFlagDescription     = "display application version"

	versionTemplate = "projmd version: %s\n"

	// defaultMaxFileSizeBytes caps rendered file content at 1 MiB unless overridden.
	defaultMaxFileSizeBytes int64 = 1 << 20

	warningFormat                 = "Warning: %s\n"
	warningConfigurationFormat    = "Warning: configuration ignored: %v\n"
	warningIgnoreFileFormat       = "Warning: ignore rules incomplete: %v\n"
	warningClipboardFormat        = "Warning: clipboard copy failed: %v\n"
	warningTokenCountFormat       = "Warning: token counting failed: %v\n"
	errorPathMissingFormat        = "path '%s' does not exist"
	errorPathNotDirectoryFormat   = "path '%s' is not a directory"
	errorStatFormat               = "stat failed for '%s': %w"
	errorAbsolutePathFormat       = "abs failed for '%s': %w"
	errorWalkFormat               = "walking '%s': %w"
	reportConvertedFormat         = "Project converted to Markdown (wrapped in <project> tags): %d files, %s.\n"
	reportClipboardMessage        = "Document copied to the clipboard.\n"
	reportTokenCountFormat        = "Total tokens in output: %d (%s)\n"
	tokenCountExactLabel          = "exact"
	tokenCountApproximateLabel    = "approximate"
)

// runOptions carries the resolved settings for one conversion run.
type runOptions struct {
	targetDirectory   string
	printToStdout     bool
	copyToClipboard   bool
	useGitignore      bool
	excludePatterns   []string
	maxFileSizeBytes  int64
	tokenizerEncoding string
}

// Execute runs the projmd application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var printToStdout bool
	var copyToClipboard bool
	var excludePatterns []string
	var disableGitignore bool
	var maxFileSizeBytes int64
	var configurationPath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			targetArgument := "."
			if len(arguments) == 1 {
				targetArgument = arguments[0]
			}

			options, optionsError := resolveRunOptions(command, resolveInputs{
				targetArgument:    targetArgument,
				printToStdout:     printToStdout,
				copyToClipboard:   copyToClipboard,
				excludePatterns:   excludePatterns,
				disableGitignore:  disableGitignore,
				maxFileSizeBytes:  maxFileSizeBytes,
				configurationPath: configurationPath,
			})
			if optionsError != nil {
				return optionsError
			}
			return run(options, tokenizer.NewCounter(options.tokenizerEncoding), clipboard.NewService(), os.Stdout, os.Stderr)
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().BoolVar(&printToStdout, stdoutFlagName, false, stdoutFlagDescription)
	registerClipboardFlag(rootCommand.Flags(), &copyToClipboard)
	rootCommand.Flags().StringArrayVarP(&excludePatterns, excludeFlagName, excludeFlagShort, nil, excludeFlagDescription)
	rootCommand.Flags().BoolVar(&disableGitignore, noGitignoreFlagName, false, noGitignoreFlagDescription)
	rootCommand.Flags().Int64Var(&maxFileSizeBytes, maxFileSizeFlagName, defaultMaxFileSizeBytes, maxFileSizeFlagDescription)
	rootCommand.Flags().StringVar(&configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// resolveInputs bundles raw flag values before file configuration is applied.
type resolveInputs struct {
	targetArgument    string
	printToStdout     bool
	copyToClipboard   bool
	excludePatterns   []string
	disableGitignore  bool
	maxFileSizeBytes  int64
	configurationPath string
}

// resolveRunOptions validates the target path and merges file configuration
// beneath explicitly set flags. A missing or non-directory target is the only
// fatal precondition; configuration problems degrade to warnings.
func resolveRunOptions(command *cobra.Command, inputs resolveInputs) (runOptions, error) {
	absoluteTarget, absoluteError := filepath.Abs(inputs.targetArgument)
	if absoluteError != nil {
		return runOptions{}, fmt.Errorf(errorAbsolutePathFormat, inputs.targetArgument, absoluteError)
	}
	targetInformation, statError := os.Stat(absoluteTarget)
	if statError != nil {
		if os.IsNotExist(statError) {
			return runOptions{}, fmt.Errorf(errorPathMissingFormat, inputs.targetArgument)
		}
		return runOptions{}, fmt.Errorf(errorStatFormat, inputs.targetArgument, statError)
	}
	if !targetInformation.IsDir() {
		return runOptions{}, fmt.Errorf(errorPathNotDirectoryFormat, inputs.targetArgument)
	}

	options := runOptions{
		targetDirectory:  absoluteTarget,
		printToStdout:    inputs.printToStdout,
		copyToClipboard:  inputs.copyToClipboard,
		useGitignore:     !inputs.disableGitignore,
		excludePatterns:  inputs.excludePatterns,
		maxFileSizeBytes: inputs.maxFileSizeBytes,
	}

	fileConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: absoluteTarget,
		ExplicitFilePath: inputs.configurationPath,
	})
	if configurationError != nil {
		fmt.Fprintf(os.Stderr, warningConfigurationFormat, configurationError)
		return options, nil
	}

	flagSet := command.Flags()
	if fileConfiguration.Stdout != nil && !flagSet.Changed(stdoutFlagName) {
		options.printToStdout = *fileConfiguration.Stdout
	}
	if fileConfiguration.Clipboard != nil && !flagSet.Changed(clipboardFlagName) {
		options.copyToClipboard = *fileConfiguration.Clipboard
	}
	if fileConfiguration.UseGitignore != nil && !flagSet.Changed(noGitignoreFlagName) {
		options.useGitignore = *fileConfiguration.UseGitignore
	}
	if fileConfiguration.MaxFileSizeBytes != nil && !flagSet.Changed(maxFileSizeFlagName) {
		options.maxFileSizeBytes = *fileConfiguration.MaxFileSizeBytes
	}
	if len(fileConfiguration.Exclude) > 0 {
		options.excludePatterns = append(fileConfiguration.Exclude, options.excludePatterns...)
	}
	if fileConfiguration.TokenizerEncoding != nil {
		options.tokenizerEncoding = *fileConfiguration.TokenizerEncoding
	}

	return options, nil
}

// run executes the conversion pipeline: walk, render, count, deliver.
// Per-file and per-subsystem failures degrade to inline notes or warnings;
// only the walk of the root directory is fatal.
func run(options runOptions, tokenCounter tokenizer.Counter, copier clipboard.Copier, stdout io.Writer, stderr io.Writer) error {
	warn := func(message string) {
		fmt.Fprintf(stderr, warningFormat, message)
	}

	ruleSet, ignoreLoadError := ignore.LoadRuleSet(options.targetDirectory, options.useGitignore, options.excludePatterns)
	if ignoreLoadError != nil {
		fmt.Fprintf(stderr, warningIgnoreFileFormat, ignoreLoadError)
	}

	entries, walkError := walk.Walk(options.targetDirectory, ruleSet, warn)
	if walkError != nil {
		return fmt.Errorf(errorWalkFormat, options.targetDirectory, walkError)
	}

	renderer := render.Renderer{
		RootPath:         options.targetDirectory,
		MaxFileSizeBytes: options.maxFileSizeBytes,
		Warn:             warn,
	}
	document, summary := renderer.Render(entries)

	if options.printToStdout {
		fmt.Fprint(stdout, document)
	}

	if options.copyToClipboard {
		if copyError := copier.Copy(document); copyError != nil {
			fmt.Fprintf(stderr, warningClipboardFormat, copyError)
		} else {
			fmt.Fprint(stderr, reportClipboardMessage)
		}
	}

	totalFiles := summary.TextFiles + summary.BinaryFiles + summary.UnreadableFiles + summary.SkippedFiles
	fmt.Fprintf(stderr, reportConvertedFormat, totalFiles, utils.FormatFileSize(int64(len(document))))

	tokenReport, tokenError := tokenizer.Count(tokenCounter, document)
	if tokenError != nil {
		fmt.Fprintf(stderr, warningTokenCountFormat, tokenError)
		return nil
	}
	countLabel := tokenCountExactLabel
	if !tokenReport.Exact {
		countLabel = tokenCountApproximateLabel
	}
	fmt.Fprintf(stderr, reportTokenCountFormat, tokenReport.Tokens, countLabel)

	return nil
}
