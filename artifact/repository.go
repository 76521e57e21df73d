package artifact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hupe1980/distcache/resource"
	"golang.org/x/sync/errgroup"
)

// Repository fetches artifacts from a Store into a local directory.
//
// Each artifact is materialized at most once: the local file is written to a
// temp name and renamed into place, so readers never observe a partial file,
// and an existing file short-circuits the fetch entirely.
type Repository struct {
	store       Store
	dir         string
	rc          *resource.Controller
	logger      *slog.Logger
	maxParallel int
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithController throttles downloads through the given resource controller.
func WithController(rc *resource.Controller) RepositoryOption {
	return func(r *Repository) {
		r.rc = rc
	}
}

// WithLogger sets the logger for fetch events. Nil discards them.
func WithLogger(l *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		r.logger = l
	}
}

// WithMaxParallel bounds the number of concurrent fetches in FetchAll.
// Defaults to 4.
func WithMaxParallel(n int) RepositoryOption {
	return func(r *Repository) {
		if n > 0 {
			r.maxParallel = n
		}
	}
}

// NewRepository creates a repository materializing into dir.
func NewRepository(store Store, dir string, opts ...RepositoryOption) (*Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: create %s: %w", dir, err)
	}

	r := &Repository{
		store:       store,
		dir:         dir,
		logger:      slog.New(slog.DiscardHandler),
		maxParallel: 4,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Fetch materializes the named artifact and returns its local path.
// A ".zst" or ".lz4" suffix selects transparent decompression; the suffix is
// stripped from the local name.
func (r *Repository) Fetch(ctx context.Context, name string) (string, error) {
	base, codec := splitCodec(name)
	dest := filepath.Join(r.dir, filepath.FromSlash(base))

	if _, err := os.Stat(dest); err == nil {
		r.logger.Debug("artifact already materialized", "name", name, "path", dest)
		return dest, nil
	}

	if err := r.rc.AcquireFetch(ctx); err != nil {
		return "", err
	}
	defer r.rc.ReleaseFetch()

	a, err := r.store.Open(ctx, name)
	if err != nil {
		return "", fmt.Errorf("artifact: open %s: %w", name, err)
	}
	defer a.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", err
	}

	// Write to a temp file in the same directory so the rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if err := r.download(ctx, a, codec, tmp); err != nil {
		return "", fmt.Errorf("artifact: fetch %s: %w", name, err)
	}

	if err := tmp.Sync(); err != nil {
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, dest); err != nil {
		return "", err
	}
	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""

	r.logger.Info("artifact materialized", "name", name, "path", dest)
	return dest, nil
}

func (r *Repository) download(ctx context.Context, a Artifact, codec string, tmp *os.File) error {
	// Raw artifacts from capable backends go straight into the file with
	// parallel ranged reads; everything else streams through the codec.
	if codec == "" && r.rc == nil {
		if dl, ok := a.(FileDownloader); ok {
			_, err := dl.DownloadTo(ctx, tmp)
			return err
		}
	}

	rc, err := a.Reader(ctx)
	if err != nil {
		return err
	}
	defer rc.Close()

	var src io.Reader = rc
	if r.rc != nil {
		src = resource.NewRateLimitedReader(ctx, src, r.rc)
	}

	dec, err := newDecompressor(codec, src)
	if err != nil {
		return err
	}
	defer dec.Close()

	_, err = io.Copy(tmp, dec)
	return err
}

// FetchAll materializes several artifacts concurrently and returns their
// local paths in input order. The first failure cancels the rest.
func (r *Repository) FetchAll(ctx context.Context, names ...string) ([]string, error) {
	paths := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxParallel)

	for i, name := range names {
		g.Go(func() error {
			path, err := r.Fetch(ctx, name)
			if err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
