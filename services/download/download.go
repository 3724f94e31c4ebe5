package download

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var (
	ErrQuotaExceeded = errors.New("download dir quota exceeded")
)

const (
	downloadDirFlag        = "download-dir"
	downloadTimeoutFlag    = "download-timeout"
	downloadQuotaBytesFlag = "download-quota-bytes"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   downloadDirFlag,
			Usage:  "local dir for downloaded footage",
			Value:  "downloads",
			EnvVar: "DOWNLOAD_DIR",
		},
		cli.DurationFlag{
			Name:   downloadTimeoutFlag,
			Usage:  "max duration of a single footage download",
			Value:  15 * time.Minute,
			EnvVar: "DOWNLOAD_TIMEOUT",
		},
		cli.Int64Flag{
			Name:   downloadQuotaBytesFlag,
			Usage:  "max total size of download dir in bytes, 0 disables the quota",
			Value:  50 << 30,
			EnvVar: "DOWNLOAD_QUOTA_BYTES",
		},
	)
}

type Downloader struct {
	dir     string
	timeout time.Duration
	quota   int64
	cl      *http.Client
}

func New(c *cli.Context, cl *http.Client) *Downloader {
	return &Downloader{
		dir:     c.String(downloadDirFlag),
		timeout: c.Duration(downloadTimeoutFlag),
		quota:   c.Int64(downloadQuotaBytesFlag),
		cl:      cl,
	}
}

func (s *Downloader) Dir() string {
	return s.dir
}

// Download streams the encoding URL to <dir>/<id>.mp4. The partial
// file is removed on any failure, completion means the write has
// finished.
func (s *Downloader) Download(ctx context.Context, encodingURL string, id uuid.UUID) (path string, size int64, err error) {
	if err = os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, errors.Wrap(err, "failed to create download dir")
	}
	if err = s.checkQuota(); err != nil {
		return "", 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", encodingURL, nil)
	if err != nil {
		return "", 0, errors.Wrap(err, "create request")
	}
	res, err := s.cl.Do(req)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to fetch encoding")
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return "", 0, errors.Errorf("unexpected status %v from video host", res.StatusCode)
	}

	path = filepath.Join(s.dir, id.String()+".mp4")
	f, err := os.Create(path)
	if err != nil {
		return "", 0, errors.Wrap(err, "failed to create local file")
	}
	size, err = io.Copy(f, res.Body)
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, errors.Wrap(err, "failed to write local file")
	}
	log.WithField("path", path).
		WithField("size", humanize.Bytes(uint64(size))).
		Info("footage downloaded")
	return path, size, nil
}

func (s *Downloader) checkQuota() error {
	if s.quota == 0 {
		return nil
	}
	used, err := dirSize(s.dir)
	if err != nil {
		return errors.Wrap(err, "failed to measure download dir")
	}
	if used >= s.quota {
		log.WithField("used", humanize.Bytes(uint64(used))).
			WithField("quota", humanize.Bytes(uint64(s.quota))).
			Warn("download dir quota exceeded")
		return ErrQuotaExceeded
	}
	return nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if os.IsNotExist(err) {
		return 0, nil
	}
	return total, err
}
