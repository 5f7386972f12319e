package config

import (
	"os"
	"os/user"
)

const (
	defaultHighscoresDB   = "highscores.db"
	defaultSSHAddr        = "0.0.0.0:2323"
	defaultSSHHostKeyPath = ".ssh/mines_ed25519"
)

// HighscoresDB is the sqlite file used by the terminal frontends.
func HighscoresDB() string {
	path, ok := os.LookupEnv("HIGHSCORES_DB")
	if !ok || path == "" {
		return defaultHighscoresDB
	}
	return path
}

func SSHAddr() string {
	addr, ok := os.LookupEnv("SSH_ADDR")
	if !ok || addr == "" {
		return defaultSSHAddr
	}
	return addr
}

// SSHHostKeyPath is where the ssh server keeps its host key. wish creates
// the key on first start when the file is missing.
func SSHHostKeyPath() string {
	path, ok := os.LookupEnv("SSH_HOST_KEY_PATH")
	if !ok || path == "" {
		return defaultSSHHostKeyPath
	}
	return path
}

// PlayerName is the default name high scores are saved under.
func PlayerName() string {
	if name, ok := os.LookupEnv("PLAYER_NAME"); ok && name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "anonymous"
}
