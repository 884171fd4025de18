// Package save orchestrates extraction across a server's save directory.
//
// A SavedArks map directory holds one <MapName>.ark world database plus
// one .arkprofile per player and one .arktribe per tribe. The Reader
// binds to such a directory and exposes batch extraction over all of
// them; ScanServers discovers the map directories of every server in a
// cluster installation.
package save

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BoldPhoenix/ark-asa-parser/bytesource"
	"github.com/BoldPhoenix/ark-asa-parser/entity"
	"github.com/BoldPhoenix/ark-asa-parser/errs"
	"github.com/BoldPhoenix/ark-asa-parser/levels"
	"github.com/BoldPhoenix/ark-asa-parser/store"
)

// defaultConcurrency bounds parallel profile decodes in batch reads.
const defaultConcurrency = 8

// Reader extracts records from one map save directory. It is safe for
// concurrent use.
type Reader struct {
	dir    string
	world  string
	table  levels.Table
	logger *zap.Logger
	limit  int
}

// Option configures a Reader.
type Option func(*Reader)

// WithLevelTable overrides the XP progression table used to recover
// player levels from experience.
func WithLevelTable(t levels.Table) Option {
	return func(r *Reader) { r.table = t }
}

// WithLogger sets the reader's logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) { r.logger = l }
}

// WithConcurrency bounds how many files a batch read decodes in
// parallel.
func WithConcurrency(n int) Option {
	return func(r *Reader) {
		if n > 0 {
			r.limit = n
		}
	}
}

// NewReader binds a Reader to a SavedArks map directory. The world
// database is expected at <dir>/<dirname>.ark; profiles and tribes are
// optional and may appear later.
func NewReader(dir string, opts ...Option) (*Reader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("save dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotDirectory, dir)
	}

	r := &Reader{
		dir:    dir,
		world:  filepath.Join(dir, filepath.Base(dir)+".ark"),
		logger: zap.NewNop(),
		limit:  defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Dir returns the bound map directory.
func (r *Reader) Dir() string { return r.dir }

// WorldPath returns the expected world database path.
func (r *Reader) WorldPath() string { return r.world }

// HasWorldSave reports whether the world database exists on disk.
func (r *Reader) HasWorldSave() bool {
	info, err := os.Stat(r.world)

	return err == nil && !info.IsDir()
}

// ListProfiles returns the .arkprofile paths in the directory, sorted.
func (r *Reader) ListProfiles() ([]string, error) {
	return r.list("*.arkprofile")
}

// ListTribes returns the .arktribe paths in the directory, sorted.
func (r *Reader) ListTribes() ([]string, error) {
	return r.list("*.arktribe")
}

func (r *Reader) list(pattern string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(r.dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", pattern, err)
	}
	sort.Strings(paths)

	return paths, nil
}

// ReadProfile decodes one player profile. The EOS ID is taken from the
// filename stem. Compressed backups are decompressed transparently.
func (r *Reader) ReadProfile(path string) (*entity.PlayerRecord, error) {
	src, err := bytesource.OpenAuto(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return entity.DecodePlayer(stem(path), src.Bytes(), r.table), nil
}

// ReadTribe decodes one tribe file. The tribe ID is taken from the
// filename stem; a non-numeric stem is malformed.
func (r *Reader) ReadTribe(path string) (*entity.TribeRecord, error) {
	id, err := strconv.ParseInt(stem(path), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: tribe filename %s", errs.ErrMalformed, filepath.Base(path))
	}

	src, err := bytesource.OpenAuto(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return entity.DecodeTribe(int32(id), src.Bytes()), nil
}

// AllPlayers decodes every profile in the directory. Files that cannot
// be read are logged and skipped; record order follows the sorted file
// listing.
func (r *Reader) AllPlayers(ctx context.Context) ([]*entity.PlayerRecord, error) {
	paths, err := r.ListProfiles()
	if err != nil {
		return nil, err
	}

	return batch(ctx, r, paths, r.ReadProfile)
}

// AllTribes decodes every tribe file in the directory.
func (r *Reader) AllTribes(ctx context.Context) ([]*entity.TribeRecord, error) {
	paths, err := r.ListTribes()
	if err != nil {
		return nil, err
	}

	return batch(ctx, r, paths, r.ReadTribe)
}

// batch decodes paths concurrently, preserving listing order and
// dropping files that error out.
func batch[T any](ctx context.Context, r *Reader, paths []string, read func(string) (*T, error)) ([]*T, error) {
	results := make([]*T, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rec, err := read(path)
			if err != nil {
				r.logger.Warn("skipping unreadable save file",
					zap.String("path", path), zap.Error(err))

				return nil
			}
			results[i] = rec

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := results[:0]
	for _, rec := range results {
		if rec != nil {
			out = append(out, rec)
		}
	}

	return out, nil
}

// openWorld opens the world database, failing with ErrNoWorldSave when
// the file is absent.
func (r *Reader) openWorld() (*store.Store, error) {
	if !r.HasWorldSave() {
		return nil, fmt.Errorf("%w: %s", errs.ErrNoWorldSave, r.world)
	}

	return store.Open(r.world)
}

// SaveHeader returns the raw world save metadata blob.
func (r *Reader) SaveHeader(ctx context.Context) ([]byte, error) {
	s, err := r.openWorld()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.SaveHeader(ctx)
}

// Dinos extracts every tamed creature from the world database. Blobs
// that do not look like tamed creatures are skipped before decoding, and
// decoded records with no identifying fields are dropped.
func (r *Reader) Dinos(ctx context.Context) ([]*entity.DinoRecord, error) {
	s, err := r.openWorld()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var dinos []*entity.DinoRecord
	err = s.EachGameObject(ctx, func(key string, blob []byte) error {
		if !entity.LooksLikeDino(blob) {
			return nil
		}
		rec := entity.DecodeDino(key, blob)
		if rec.SpeciesName != nil || rec.TamedName != nil || rec.OwnerName != nil {
			dinos = append(dinos, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return dinos, nil
}

// Structures extracts every placed structure from the world database.
func (r *Reader) Structures(ctx context.Context) ([]*entity.StructureRecord, error) {
	s, err := r.openWorld()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var structures []*entity.StructureRecord
	err = s.EachGameObject(ctx, func(key string, blob []byte) error {
		if !entity.LooksLikeStructure(blob) {
			return nil
		}
		rec := entity.DecodeStructure(key, blob)
		if rec.StructureType != nil || rec.TribeName != nil || rec.OwnerName != nil {
			structures = append(structures, rec)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return structures, nil
}

// ScanServers discovers the map save directory of every server under a
// cluster root. Server directories are named asaserver_<name> and hold
// their saves under ShooterGame/Saved/SavedArks/<MapName>. Only servers
// with an existing world database are returned.
func ScanServers(clusterRoot string, opts ...Option) (map[string]*Reader, error) {
	serverDirs, err := filepath.Glob(filepath.Join(clusterRoot, "asaserver_*"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", clusterRoot, err)
	}

	readers := make(map[string]*Reader)
	for _, serverDir := range serverDirs {
		info, err := os.Stat(serverDir)
		if err != nil || !info.IsDir() {
			continue
		}

		savedArks := filepath.Join(serverDir, "ShooterGame", "Saved", "SavedArks")
		entries, err := os.ReadDir(savedArks)
		if err != nil {
			continue
		}

		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			r, err := NewReader(filepath.Join(savedArks, e.Name()), opts...)
			if err != nil || !r.HasWorldSave() {
				continue
			}
			name := strings.TrimPrefix(filepath.Base(serverDir), "asaserver_")
			readers[name] = r

			break
		}
	}

	return readers, nil
}

// stem returns the filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
