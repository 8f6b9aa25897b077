package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Init configures the global logrus logger.
// It is safe to call multiple times; later calls overwrite previous settings.
// An empty or unknown level falls back to info, format "json" switches to the JSON formatter.
func Init(level, format string) {
	log.SetOutput(os.Stdout)

	if format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// L returns the global logger for convenience.
func L() *log.Logger { return log.StandardLogger() }

// Chat returns an entry tagged with the chat and user a message came from.
func Chat(chatID, userID int64) *log.Entry {
	return log.WithFields(log.Fields{"chat_id": chatID, "user_id": userID})
}
