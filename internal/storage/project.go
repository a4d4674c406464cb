package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// RootDirName is the per-user directory holding boards and logs.
	RootDirName = ".taskboard"

	defaultBoardDir = "default"
)

// FindProjectRoot walks up from cwd looking for .git directory.
// Returns the directory containing .git, or NotInRepoError if not found.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		gitPath := filepath.Join(dir, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", NotInRepoError{}
		}
		dir = parent
	}
}

// SanitizePath converts an absolute path to a safe directory name.
// "/Users/abatilo/myproject" -> "Users-abatilo-myproject"
func SanitizePath(path string) string {
	result := strings.TrimPrefix(path, "/")

	re := regexp.MustCompile(`[^a-zA-Z0-9]+`)
	result = re.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// RootDir returns ~/.taskboard for the given home directory.
func RootDir(home string) string {
	return filepath.Join(home, RootDirName)
}

// DefaultDataDir returns the board directory for the current working directory:
// ~/.taskboard/<sanitized project root> inside a git repository,
// ~/.taskboard/default everywhere else.
func DefaultDataDir(home string) string {
	root, err := FindProjectRoot()
	if err != nil {
		return filepath.Join(RootDir(home), defaultBoardDir)
	}
	name := SanitizePath(root)
	if name == "" {
		name = defaultBoardDir
	}
	return filepath.Join(RootDir(home), name)
}
