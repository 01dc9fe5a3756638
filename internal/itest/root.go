//go:build integration

package itest

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
)

func findRepoRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		if filepath.Dir(dir) == dir {
			return "", errors.New("could not locate go.mod above " + wd)
		}
	}
}

// buildCLI compiles cmd/pubkit into dir and returns the binary path.
func buildCLI(repoRoot, dir string) (string, []byte, error) {
	bin := filepath.Join(dir, "pubkit")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/pubkit")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	return bin, out, err
}
