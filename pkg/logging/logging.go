package logging

import (
	"go.uber.org/zap"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Setup builds the process logger. Debug selects zap's development config,
// which logs at debug level in a human readable form.
func Setup(debug bool, appName, appVersion string) error {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		// Chunk paths go to stdout; keep the log stream on stderr only.
		cfg.OutputPaths = []string{"stderr"}
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}
