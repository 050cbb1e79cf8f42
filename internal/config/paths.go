package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDirName  = ".ragjudge"
	ConfigFileName = "config.yml"
)

// ErrConfigNotFound reports that no config file exists in the search path.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigPath returns root/.ragjudge/config.yml.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// ProjectRootFromConfigPath returns the directory that owns configPath: the
// parent of .ragjudge, or the file's own directory for configs kept elsewhere.
func ProjectRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) != ConfigDirName {
		return dir
	}
	return filepath.Dir(dir)
}

// FindConfigPath walks from startDir (the working directory when empty)
// towards the filesystem root and returns the first .ragjudge/config.yml.
// A .ragjudge directory without a config file stops the search with an error.
func FindConfigPath(startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		path, found, err := configIn(dir)
		if err != nil || found {
			return path, err
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return "", fmt.Errorf("%w: no %s in %s or parent directories", ErrConfigNotFound, filepath.Join(ConfigDirName, ConfigFileName), start)
}

// configIn checks a single directory for a project config.
func configIn(dir string) (string, bool, error) {
	path := ConfigPath(dir)
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return "", false, fmt.Errorf("config path %q is a directory", path)
	case err == nil:
		return path, true, nil
	case !os.IsNotExist(err):
		return "", false, fmt.Errorf("stat config path %q: %w", path, err)
	}
	if info, err := os.Stat(filepath.Dir(path)); err == nil && info.IsDir() {
		return "", false, fmt.Errorf("found %q but %s is missing", filepath.Dir(path), ConfigFileName)
	}
	return "", false, nil
}
