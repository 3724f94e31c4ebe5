package extract

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"github.com/yargevad/filepathx"
)

const (
	extractorBinFlag     = "extractor-bin"
	extractorTimeoutFlag = "extractor-timeout"
	extractorOutDirFlag  = "extractor-out-dir"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   extractorBinFlag,
			Usage:  "path to the external clip extractor binary",
			Value:  "clip-extractor",
			EnvVar: "EXTRACTOR_BIN",
		},
		cli.DurationFlag{
			Name:   extractorTimeoutFlag,
			Usage:  "max duration of a single extraction run",
			Value:  30 * time.Minute,
			EnvVar: "EXTRACTOR_TIMEOUT",
		},
		cli.StringFlag{
			Name:   extractorOutDirFlag,
			Usage:  "root dir for extracted clips",
			Value:  "clips",
			EnvVar: "EXTRACTOR_OUT_DIR",
		},
	)
}

// Task is a running extraction. Callers either await Done or detach,
// the outcome is never dropped on the floor.
type Task struct {
	done  chan struct{}
	err   error
	clips []string
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err reports the outcome. Only valid after Done is closed.
func (t *Task) Err() error {
	return t.err
}

// Clips lists the extracted clip files. Only valid after Done is
// closed.
func (t *Task) Clips() []string {
	return t.clips
}

// Wait blocks until the task completes and returns its outcome.
func (t *Task) Wait() ([]string, error) {
	<-t.done
	return t.clips, t.err
}

type Extractor struct {
	bin     string
	timeout time.Duration
	outRoot string
}

func New(c *cli.Context) *Extractor {
	return &Extractor{
		bin:     c.String(extractorBinFlag),
		timeout: c.Duration(extractorTimeoutFlag),
		outRoot: c.String(extractorOutDirFlag),
	}
}

// OutDir returns the per-footage destination directory.
func (s *Extractor) OutDir(name string) string {
	return filepath.Join(s.outRoot, name)
}

// Async runs fn in the background and exposes its outcome as a Task.
// Used by Run and by fakes that never spawn the real binary.
func Async(fn func() ([]string, error)) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.clips, t.err = fn()
	}()
	return t
}

// Run spawns the extractor with (input, outDir). The process output
// is log-only but its exit code is part of the task outcome.
func (s *Extractor) Run(ctx context.Context, input string, outDir string) *Task {
	return Async(func() ([]string, error) {
		return s.run(ctx, input, outDir)
	})
}

func (s *Extractor) run(ctx context.Context, input string, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create extractor out dir")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.bin, input, outDir)
	out, err := cmd.CombinedOutput()
	l := log.WithField("bin", s.bin).
		WithField("input", input).
		WithField("out_dir", outDir)
	if len(out) > 0 {
		l.Debugf("extractor output: %s", out)
	}
	if err != nil {
		l.WithError(err).Error("extractor failed")
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, errors.Wrapf(err, "extractor exited with code %v", exitErr.ExitCode())
		}
		return nil, errors.Wrap(err, "failed to run extractor")
	}
	clips, err := filepathx.Glob(filepath.Join(outDir, "**", "*.mp4"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan extractor out dir")
	}
	l.WithField("clips", len(clips)).Info("extraction finished")
	return clips, nil
}
