package project

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rpggio/ccsearch/internal/domain/record"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultExtension = ".jsonl"
	DefaultWorkers   = 4

	// ctxCheckInterval is how many lines are read between context checks.
	ctxCheckInterval = 1024
)

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	Root      string
	Extension string
	Workers   int
}

// Loader discovers log files under a root directory and decodes them.
type Loader struct {
	root    string
	ext     string
	workers int
	logger  *slog.Logger
}

type candidate struct {
	path    string
	modTime time.Time
}

// NewLoader creates a loader. Zero config fields take their defaults.
func NewLoader(cfg LoaderConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Loader{root: cfg.Root, ext: ext, workers: workers, logger: logger}
}

// Root returns the directory the loader scans.
func (l *Loader) Root() string { return l.root }

// LoadAll returns up to limit projects, most recently modified first.
func (l *Loader) LoadAll(ctx context.Context, limit int) ([]Project, error) {
	snap, err := l.Scan(ctx, limit)
	if err != nil {
		return nil, err
	}
	return snap.Projects, nil
}

// Scan enumerates every log file under the root, orders them by modification
// time descending and decodes the first limit of them. Files past the limit
// are never opened. A file that cannot be read stays in the result with
// LoadErr set and no records.
func (l *Loader) Scan(ctx context.Context, limit int) (*Snapshot, error) {
	if err := l.checkRoot(); err != nil {
		return nil, err
	}
	snap := &Snapshot{Root: l.root, Limit: limit, Projects: []Project{}}
	if limit <= 0 {
		snap.LoadedAt = time.Now()
		return snap, nil
	}

	candidates, err := l.candidates(ctx)
	if err != nil {
		return nil, err
	}
	snap.Candidates = len(candidates)

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return b.modTime.Compare(a.modTime)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	projects := make([]Project, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, c := range candidates {
		g.Go(func() error {
			p, err := l.LoadOne(gctx, c.path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.logger.Warn("dropping unreadable log file", "path", c.path, "error", err)
				p = Project{
					SourcePath:  c.path,
					DisplayName: DisplayName(c.path),
					LoadErr:     err,
				}
			}
			p.ModTime = c.modTime
			projects[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap.Projects = projects
	snap.LoadedAt = time.Now()
	l.logger.Debug("scan complete",
		"root", l.root,
		"candidates", snap.Candidates,
		"loaded", len(projects),
		"records", snap.RecordCount(),
	)
	return snap, nil
}

// LoadOne reads and decodes a single log file. Lines that do not decode are
// dropped; records keep file order.
func (l *Loader) LoadOne(ctx context.Context, path string) (Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return Project{}, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	p := Project{
		SourcePath:  path,
		DisplayName: DisplayName(path),
	}
	if info, err := f.Stat(); err == nil {
		p.ModTime = info.ModTime()
	}

	records, err := readRecords(ctx, f)
	if err != nil {
		return Project{}, fmt.Errorf("reading %s: %w", path, err)
	}
	p.Records = records
	return p, nil
}

func (l *Loader) checkRoot() error {
	if l.root == "" {
		return fmt.Errorf("%w: root is empty", ErrRootNotFound)
	}
	info, err := os.Stat(l.root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, l.root)
	}
	return nil
}

// candidates walks the root in lexical order. Unreadable sub-directories and
// entries that cannot be stat'ed are skipped.
func (l *Loader) candidates(ctx context.Context) ([]candidate, error) {
	// A trailing separator makes WalkDir descend into a symlinked root.
	walkRoot := l.root
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		walkRoot += string(filepath.Separator)
	}

	var out []candidate
	err := filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == walkRoot {
				return fmt.Errorf("%w: %w", ErrRootNotFound, walkErr)
			}
			l.logger.Debug("skipping unreadable path", "path", path, "error", walkErr)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), l.ext) {
			return nil
		}
		// Stat follows symlinks so linked files are ordered by their target.
		info, err := os.Stat(path)
		if err != nil {
			l.logger.Debug("skipping unstattable file", "path", path, "error", err)
			return nil
		}
		if info.IsDir() {
			return nil
		}
		out = append(out, candidate{path: path, modTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// readRecords decodes r line by line. Lines have no length cap; a trailing
// "\r" is stripped along with the newline.
func readRecords(ctx context.Context, r io.Reader) ([]record.Record, error) {
	reader := bufio.NewReaderSize(r, 64*1024)
	var records []record.Record
	for lineNo := 1; ; lineNo++ {
		if lineNo%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(line) > 0 {
			line = trimNewline(line)
			if !utf8.Valid(line) {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrNotText)
			}
			if rec, ok := record.DecodeBytes(line); ok {
				records = append(records, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			return records, nil
		}
	}
}

func trimNewline(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
