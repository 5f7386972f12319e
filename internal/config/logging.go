package config

import "os"

// LogFile is the path of the rotated log file, empty when file logging is
// disabled.
func LogFile() string {
	return os.Getenv("LOG_FILE")
}
