package node

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tokenized/pkg/logger"
)

// ContextWithLogger attaches a logger configured for development or production. A non empty
// file path adds a log file.
func ContextWithLogger(ctx context.Context, isDevelopment, isText bool,
	filePath string) context.Context {

	var logConfig *logger.Config
	if isText {
		logConfig = logger.NewDevelopmentConfig()
		logConfig.IsText = true
	} else {
		logConfig = logger.NewDevelopmentConfig()
	}

	logConfig.Main.SetWriter(os.Stdout)
	logConfig.Main.Format |= logger.IncludeSystem | logger.IncludeMicro
	if isDevelopment {
		logConfig.Main.MinLevel = logger.LevelVerbose
	} else {
		logConfig.Main.MinLevel = logger.LevelInfo
	}

	if len(filePath) > 0 {
		os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
		logConfig.Main.AddFile(filePath)
	}

	return logger.ContextWithLogConfig(ctx, logConfig)
}

// ContextWithNoLogger drops all log output. Used by tests.
func ContextWithNoLogger(ctx context.Context) context.Context {
	return logger.ContextWithNoLogger(ctx)
}
