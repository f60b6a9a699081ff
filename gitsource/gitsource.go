// Package gitsource runs git log on a local repository and exposes its
// output as a line stream for the classifier.
package gitsource

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	git "gopkg.in/src-d/go-git.v4"
)

// logArgs produce the header grammar the parser expects, one numstat line
// per file, merges filtered out.
var logArgs = []string{
	"log",
	`--pretty=format:"%H","%ae","%ai"`,
	"--numstat",
	"--no-merges",
}

type logStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (s *logStream) Close() error {
	if err := s.ReadCloser.Close(); err != nil {
		s.cmd.Wait() // nolint

		return err
	}

	return s.cmd.Wait()
}

// Open verifies that dir holds a git repository with at least one commit and
// starts git log on it. The returned stream yields the raw log output;
// closing it reaps the subprocess.
func Open(ctx context.Context, dir string) (io.ReadCloser, error) {
	repository, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("opening repository %v: %w", dir, err)
	}

	if _, err := repository.Head(); err != nil {
		return nil, fmt.Errorf("repository %v has no commits: %w", dir, err)
	}

	cmd := exec.CommandContext(ctx, "git", logArgs...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting git log in %v: %w", dir, err)
	}

	log.Infof("Reading git log from %v\n", dir)

	return &logStream{ReadCloser: stdout, cmd: cmd}, nil
}

// Label derives a repository label from its directory path, used when the
// caller does not supply one.
func Label(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}

	return filepath.Base(abs)
}
