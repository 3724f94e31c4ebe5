package ingest

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/playproof-io/footage-web/models"
	"github.com/playproof-io/footage-web/services/extract"
	"github.com/playproof-io/footage-web/services/job"
	"github.com/playproof-io/footage-web/services/source"
)

var (
	ErrDuplicateSubmission = errors.New("url already submitted")
	ErrDownloadFailed      = errors.New("download failed")
	ErrInvalidCategory     = errors.New("unsupported category")
)

const (
	ingestWorkersFlag = "ingest-workers"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.IntFlag{
			Name:   ingestWorkersFlag,
			Usage:  "max concurrent download+extract pipelines",
			Value:  4,
			EnvVar: "INGEST_WORKERS",
		},
	)
}

type Store interface {
	FootageURLExists(ctx context.Context, url string) (bool, error)
	CreateFootage(ctx context.Context, f *models.Footage) error
	CreateClips(ctx context.Context, clips []*models.Clip) error
}

type Resolver interface {
	Resolve(ctx context.Context, url string) (*source.Source, error)
}

type Downloader interface {
	Download(ctx context.Context, encodingURL string, id uuid.UUID) (string, int64, error)
}

type Extractor interface {
	Run(ctx context.Context, input string, outDir string) *extract.Task
	OutDir(name string) string
}

type Ingestor struct {
	store     Store
	resolver  Resolver
	down      Downloader
	extractor Extractor
	jobs      *job.Storage
	slots     chan struct{}
}

func New(c *cli.Context, store Store, resolver Resolver, down Downloader, extractor Extractor, jobs *job.Storage) *Ingestor {
	workers := c.Int(ingestWorkersFlag)
	if workers < 1 {
		workers = 1
	}
	return &Ingestor{
		store:     store,
		resolver:  resolver,
		down:      down,
		extractor: extractor,
		jobs:      jobs,
		slots:     make(chan struct{}, workers),
	}
}

// Ingest runs the submission pipeline: duplicate check, source
// resolution, download, persistence, then clip extraction as a
// tracked task. Each step is a hard precondition for the next.
// The returned task is already being awaited internally; callers may
// also wait on it or walk away, its state ends up in job storage
// either way.
func (s *Ingestor) Ingest(ctx context.Context, userID uuid.UUID, url string, category models.Category) (*models.Footage, *extract.Task, error) {
	if !category.Valid() {
		return nil, nil, ErrInvalidCategory
	}
	exists, err := s.store.FootageURLExists(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrDuplicateSubmission
	}

	src, err := s.resolver.Resolve(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	// The slot covers the whole pipeline, download through extraction,
	// so the worker flag bounds running extractors too. It is released
	// by trackExtraction once the task settles.
	select {
	case s.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	release := func() {
		<-s.slots
	}

	id := uuid.New()
	path, _, err := s.down.Download(ctx, src.Chosen.URL, id)
	if err != nil {
		release()
		return nil, nil, errors.Wrap(ErrDownloadFailed, err.Error())
	}

	f := &models.Footage{
		FootageID: id,
		UserID:    userID,
		URL:       url,
		Category:  category,
	}
	if err = s.store.CreateFootage(ctx, f); err != nil {
		// No record means nobody owns the file, remove it.
		_ = os.Remove(path)
		release()
		if errors.Is(err, models.ErrURLTaken) {
			return nil, nil, ErrDuplicateSubmission
		}
		return nil, nil, err
	}

	t := s.startExtraction(f, path, release)
	return f, t, nil
}

func (s *Ingestor) startExtraction(f *models.Footage, path string, release func()) *extract.Task {
	// Extraction outlives the submitting request on purpose.
	ctx := context.Background()
	_ = s.jobs.Set(ctx, &job.State{FootageID: f.FootageID, Status: job.StatusRunning})
	t := s.extractor.Run(ctx, path, s.extractor.OutDir(f.FootageID.String()))
	go s.trackExtraction(ctx, f, t, release)
	return t
}

func (s *Ingestor) trackExtraction(ctx context.Context, f *models.Footage, t *extract.Task, release func()) {
	defer release()
	l := log.WithField("footage_id", f.FootageID)
	paths, err := t.Wait()
	if err != nil {
		l.WithError(err).Error("clip extraction failed")
		_ = s.jobs.Set(ctx, &job.State{FootageID: f.FootageID, Status: job.StatusFailed, Error: err.Error()})
		return
	}
	clips := make([]*models.Clip, 0, len(paths))
	for _, p := range paths {
		clips = append(clips, &models.Clip{
			FootageID: f.FootageID,
			Path:      filepath.ToSlash(p),
		})
	}
	if err = s.store.CreateClips(ctx, clips); err != nil {
		l.WithError(err).Error("failed to persist clips")
		_ = s.jobs.Set(ctx, &job.State{FootageID: f.FootageID, Status: job.StatusFailed, Error: "failed to persist clips"})
		return
	}
	l.WithField("clips", len(clips)).Info("clip extraction done")
	_ = s.jobs.Set(ctx, &job.State{FootageID: f.FootageID, Status: job.StatusDone, Clips: len(clips)})
}
