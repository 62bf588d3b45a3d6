package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/projmd/projmd/internal/cli"
	"github.com/projmd/projmd/internal/utils"
)

// main is the entry point for the projmd command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}

	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage + ": " + applicationExecutionError.Error())
	}

	// Syncing a console logger attached to a terminal reports EINVAL, so
	// sync only when stderr was redirected to a regular file.
	if !term.IsTerminal(int(os.Stderr.Fd())) && isRegularFile(os.Stderr) {
		if syncError := loggerInstance.Sync(); syncError != nil {
			if !strings.Contains(strings.ToLower(syncError.Error()), "invalid argument") {
				log.Printf("Logger sync failed: %v", syncError)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(file *os.File) bool {
	fileInformation, statError := file.Stat()
	if statError != nil {
		return false
	}
	return fileInformation.Mode().IsRegular()
}
