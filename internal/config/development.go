package config

import (
	"os"
	"strconv"
)

// Development switches the binaries to debug level, coloured text logs.
// Any value other than "0" or a false boolean enables it.
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	if b, err := strconv.ParseBool(development); err == nil {
		return b
	}
	return development != "0"
}
