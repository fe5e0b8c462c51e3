package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"repochunk/cmd"
	"repochunk/pkg/logging"
	"repochunk/pkg/version"
)

func main() {
	if err := logging.Setup(false, "repochunk", version.Version); err != nil {
		log.Printf("Failed to initialize logger, using fallback: %v", err)
	}

	err := cmd.Execute(logging.Logger)

	// --debug may have replaced the logger; sync whichever is current.
	syncLogger(logging.Logger)

	if err != nil {
		logging.Logger.Fatal("repochunk execution failed", zap.Error(err))
	}
}

// syncLogger flushes the logger when stderr can actually be synced.
// Syncing a pipe or character device fails with "invalid argument".
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
