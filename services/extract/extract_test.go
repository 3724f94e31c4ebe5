package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extractor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRunCollectsClips(t *testing.T) {
	bin := writeScript(t, `mkdir -p "$2/segments"
cp "$1" "$2/segments/clip-0.mp4"
cp "$1" "$2/clip-1.mp4"
`)
	input := filepath.Join(t.TempDir(), "footage.mp4")
	require.NoError(t, os.WriteFile(input, []byte("video"), 0o644))
	outRoot := t.TempDir()

	s := &Extractor{bin: bin, timeout: time.Minute, outRoot: outRoot}
	task := s.Run(context.Background(), input, s.OutDir("f1"))
	clips, err := task.Wait()
	require.NoError(t, err)
	assert.Len(t, clips, 2)
}

func TestRunSurfacesExitCode(t *testing.T) {
	bin := writeScript(t, "exit 3\n")
	s := &Extractor{bin: bin, timeout: time.Minute, outRoot: t.TempDir()}
	task := s.Run(context.Background(), "missing.mp4", s.OutDir("f2"))
	_, err := task.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 3")
}

func TestRunMissingBinary(t *testing.T) {
	s := &Extractor{bin: filepath.Join(t.TempDir(), "nope"), timeout: time.Minute, outRoot: t.TempDir()}
	task := s.Run(context.Background(), "in.mp4", s.OutDir("f3"))
	_, err := task.Wait()
	assert.Error(t, err)
}

func TestTaskDoneChannel(t *testing.T) {
	task := Async(func() ([]string, error) {
		return []string{"a.mp4"}, nil
	})
	select {
	case <-task.Done():
	case <-time.After(time.Second):
		t.Fatal("task never completed")
	}
	assert.NoError(t, task.Err())
	assert.Equal(t, []string{"a.mp4"}, task.Clips())
}
