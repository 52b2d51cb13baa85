package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It starts as a quiet default so tests and
// library code can log before Init runs.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Init configures Log from LOG_LEVEL (default "info") and LOG_FORMAT
// ("json" or text). Call once from main.
func Init() {
	InitWithOutput(os.Stdout)
}

func InitWithOutput(out io.Writer) {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(out)
}

// For returns an entry tagged with the owning system.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
