// Package localfs stores published clips in date partitions on the local filesystem.
package localfs

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/port"
)

const (
	sidecarExt = ".sha256"
	tempPrefix = ".publish-"
	tempSuffix = ".tmp"

	dirPerm  = 0o755
	filePerm = 0o644
)

type Store struct {
	root         string
	lookbackDays int
	now          func() time.Time
}

func NewStore(root string, lookbackDays int) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	if lookbackDays < 0 {
		lookbackDays = 0
	}
	return &Store{root: root, lookbackDays: lookbackDays, now: time.Now}, nil
}

func (s *Store) Root() string {
	return s.root
}

// Publish copies tmpPath into today's partition under a temporary name, fsyncs it, writes the
// checksum sidecar, then renames it to its final key. The source file is removed on success.
func (s *Store) Publish(ctx context.Context, tmpPath, logicalName, jobID string) (*domain.Artifact, error) {
	if jobID == "" || strings.ContainsAny(jobID, `/\`) {
		return nil, domain.NewJobError(domain.KindStorageFailure, "invalid job id for publish")
	}

	now := s.now().UTC()
	key := domain.StorageKey(now, logicalName, jobID)
	final := s.pathFor(key)
	dir := filepath.Dir(final)

	src, err := os.Open(tmpPath)
	if err != nil {
		return nil, storageErr("open clip", err)
	}
	defer func() { _ = src.Close() }()

	tmp, err := s.createTemp(dir)
	if err != nil {
		return nil, storageErr("create temp file", err)
	}
	tmpName := tmp.Name()
	published := false
	defer func() {
		if !published {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), &ctxReader{ctx: ctx, r: src})
	if err != nil {
		return nil, storageErr("copy clip", err)
	}
	if n == 0 {
		return nil, domain.NewJobError(domain.KindStorageFailure, "refusing to publish an empty clip")
	}
	if err := tmp.Sync(); err != nil {
		return nil, storageErr("fsync clip", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, storageErr("close clip", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return nil, storageErr("chmod clip", err)
	}

	checksum := hex.EncodeToString(h.Sum(nil))
	if err := writeSidecar(final, checksum, n); err != nil {
		return nil, storageErr("write checksum", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(final + sidecarExt)
		return nil, storageErr("rename clip", err)
	}
	published = true
	syncDir(dir)

	_ = os.Remove(tmpPath)

	return &domain.Artifact{
		StorageKey: key,
		Checksum:   checksum,
		SizeBytes:  n,
		CreatedAt:  now,
	}, nil
}

// createTemp retries once when a concurrent sweep removed the empty partition directory.
func (s *Store) createTemp(dir string) (*os.File, error) {
	var lastErr error
	for range 2 {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, err
		}
		f, err := os.CreateTemp(dir, tempPrefix+"*"+tempSuffix)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// Fetch opens the artifact at key. The recorded size is always compared; verify also
// recomputes the checksum before the reader is handed out.
func (s *Store) Fetch(ctx context.Context, key string, verify bool) (io.ReadCloser, *domain.Artifact, error) {
	if err := domain.ValidateStorageKey(key); err != nil {
		return nil, nil, fmt.Errorf("fetch %q: %w", key, err)
	}

	art, err := s.stat(key)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}

	if verify {
		if art.Checksum == "" {
			_ = f.Close()
			return nil, nil, fmt.Errorf("%w: %s has no checksum", domain.ErrCorruptArtifact, key)
		}
		h := sha256.New()
		if _, err := io.Copy(h, &ctxReader{ctx: ctx, r: f}); err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("hash artifact: %w", err)
		}
		if got := hex.EncodeToString(h.Sum(nil)); got != art.Checksum {
			_ = f.Close()
			return nil, nil, fmt.Errorf("%w: %s checksum %s, recorded %s", domain.ErrCorruptArtifact, key, got, art.Checksum)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("rewind artifact: %w", err)
		}
	}

	return f, art, nil
}

// stat loads artifact metadata and checks the on-disk size against the sidecar.
func (s *Store) stat(key string) (*domain.Artifact, error) {
	full := s.pathFor(key)
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	checksum, size, err := readSidecar(full)
	switch {
	case errors.Is(err, os.ErrNotExist):
		size = -1
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptArtifact, key, err)
	}
	if size >= 0 && size != info.Size() {
		return nil, fmt.Errorf("%w: %s is %d bytes, recorded %d", domain.ErrCorruptArtifact, key, info.Size(), size)
	}

	return &domain.Artifact{
		StorageKey: key,
		Checksum:   checksum,
		SizeBytes:  info.Size(),
		CreatedAt:  info.ModTime().UTC(),
	}, nil
}

// Delete removes the artifact and its sidecar. It reports whether the artifact existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	if err := domain.ValidateStorageKey(key); err != nil {
		return false, fmt.Errorf("delete %q: %w", key, err)
	}
	existed, err := s.removeFiles(key)
	if err != nil {
		return existed, err
	}
	// fails harmlessly while the partition still has files
	_ = os.Remove(filepath.Dir(s.pathFor(key)))
	return existed, nil
}

func (s *Store) removeFiles(key string) (bool, error) {
	full := s.pathFor(key)
	existed := true
	if err := os.Remove(full); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("delete artifact: %w", err)
		}
		existed = false
	}
	if err := os.Remove(full + sidecarExt); err != nil && !errors.Is(err, os.ErrNotExist) {
		return existed, fmt.Errorf("delete checksum: %w", err)
	}
	return existed, nil
}

// Locate finds the artifact of jobID, searching today's partition first and then the
// preceding lookback days.
func (s *Store) Locate(ctx context.Context, jobID string) (*domain.Artifact, error) {
	if jobID == "" {
		return nil, domain.ErrNotFound
	}
	today := s.now().UTC()
	for d := 0; d <= s.lookbackDays; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		partition := today.AddDate(0, 0, -d).Format(domain.PartitionLayout)
		entries, err := os.ReadDir(filepath.Join(s.root, partition))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read partition %s: %w", partition, err)
		}
		for _, e := range entries {
			if e.IsDir() || !belongsTo(e.Name(), jobID) {
				continue
			}
			return s.stat(partition + "/" + e.Name())
		}
	}
	return nil, domain.ErrNotFound
}

func belongsTo(name, jobID string) bool {
	if !isArtifactName(name) {
		return false
	}
	base := strings.TrimSuffix(name, path.Ext(name))
	return strings.HasSuffix(base, "_"+jobID)
}

func isArtifactName(name string) bool {
	return !strings.HasPrefix(name, ".") && !strings.HasSuffix(name, sidecarExt) && !strings.HasSuffix(name, tempSuffix)
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func storageErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.Classify(err, domain.KindStorageFailure)
	}
	return domain.WrapJobError(domain.KindStorageFailure, fmt.Errorf("%s: %w", op, err), "")
}

func writeSidecar(final, checksum string, size int64) error {
	content := fmt.Sprintf("%s  %s\nsize %d\n", checksum, filepath.Base(final), size)
	dir := filepath.Dir(final)

	tmp, err := os.CreateTemp(dir, tempPrefix+"*"+tempSuffix)
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, final+sidecarExt); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// readSidecar returns the checksum and recorded size. size is -1 when not recorded.
func readSidecar(final string) (checksum string, size int64, err error) {
	f, err := os.Open(final + sidecarExt)
	if err != nil {
		return "", -1, err
	}
	defer func() { _ = f.Close() }()

	size = -1
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		line++
		switch {
		case line == 1 && len(fields) >= 1:
			checksum = fields[0]
		case len(fields) == 2 && fields[0] == "size":
			size, err = strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return "", -1, fmt.Errorf("bad size in checksum file: %w", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", -1, err
	}
	if len(checksum) != sha256.Size*2 {
		return "", -1, fmt.Errorf("malformed checksum file")
	}
	return checksum, size, nil
}

func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}

// ctxReader stops a long copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

var _ port.ArtifactStore = (*Store)(nil)
