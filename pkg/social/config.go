// Package social is the repository surface the UI layer calls into. It
// wires the per-entity flat-file tables together with the auxiliary edge
// and like files, and owns the cross-record flows: creating posts, the
// like flow with notification fan-out, and follow bookkeeping.
package social

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config locates the flat files of one data directory. It is a plain
// value passed in explicitly; there is no process-global configuration.
type Config struct {
	DataDir           string `yaml:"data_dir"`
	UsersFile         string `yaml:"users_file"`
	PicturesFile      string `yaml:"pictures_file"`
	NotificationsFile string `yaml:"notifications_file"`
	FollowersFile     string `yaml:"followers_file"`
	LikesFile         string `yaml:"likes_file"`
}

// DefaultConfig returns the standard data directory layout.
func DefaultConfig() Config {
	return Config{
		DataDir:           "data",
		UsersFile:         "users.txt",
		PicturesFile:      "pictures.txt",
		NotificationsFile: "notifications.txt",
		FollowersFile:     "followers.txt",
		LikesFile:         "likes.txt",
	}
}

// LoadConfig reads a YAML config file. Unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg.withDefaults(), nil
}

// withDefaults fills any empty field from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.UsersFile == "" {
		c.UsersFile = def.UsersFile
	}
	if c.PicturesFile == "" {
		c.PicturesFile = def.PicturesFile
	}
	if c.NotificationsFile == "" {
		c.NotificationsFile = def.NotificationsFile
	}
	if c.FollowersFile == "" {
		c.FollowersFile = def.FollowersFile
	}
	if c.LikesFile == "" {
		c.LikesFile = def.LikesFile
	}
	return c
}

func (c Config) usersPath() string         { return filepath.Join(c.DataDir, c.UsersFile) }
func (c Config) picturesPath() string      { return filepath.Join(c.DataDir, c.PicturesFile) }
func (c Config) notificationsPath() string { return filepath.Join(c.DataDir, c.NotificationsFile) }
func (c Config) followersPath() string     { return filepath.Join(c.DataDir, c.FollowersFile) }
func (c Config) likesPath() string         { return filepath.Join(c.DataDir, c.LikesFile) }
