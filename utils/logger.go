package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before InitLogger runs.
var Log = logrus.New()

// InitLogger configures Log with the given level name, falling back to info.
func InitLogger(level string) {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.Warnf("unknown log level %q, using info", level)
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
