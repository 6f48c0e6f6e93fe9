package localfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bnema/snip/internal/domain"
	"github.com/bnema/snip/internal/infrastructure/logger"
)

// staleTempAge is used for temp files when the policy has no age bound.
const staleTempAge = time.Hour

type storedFile struct {
	key     string
	path    string
	size    int64
	modTime time.Time
}

// Sweep deletes artifacts older than policy.MaxAge, then deletes oldest-first while the
// total exceeds policy.MaxTotalBytes. Leftover publish temp files and empty partitions go too.
func (s *Store) Sweep(ctx context.Context, policy domain.RetentionPolicy) (*domain.SweepResult, error) {
	now := s.now()
	result := &domain.SweepResult{}

	tempAge := staleTempAge
	if policy.MaxAge > 0 {
		tempAge = policy.MaxAge
	}

	partitions, err := s.partitions()
	if err != nil {
		return nil, err
	}

	var files []storedFile
	for _, partition := range partitions {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		dir := filepath.Join(s.root, partition)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return result, fmt.Errorf("read partition %s: %w", partition, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			name := e.Name()
			full := filepath.Join(dir, name)

			switch {
			case strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix):
				if now.Sub(info.ModTime()) > tempAge {
					if err := os.Remove(full); err == nil {
						result.StaleTemps++
					}
				}
			case strings.HasSuffix(name, sidecarExt):
				// Publish writes the sidecar before renaming the clip in, so a young sidecar
				// without its clip may belong to a publish in flight.
				if now.Sub(info.ModTime()) <= tempAge {
					continue
				}
				if _, err := os.Stat(strings.TrimSuffix(full, sidecarExt)); errors.Is(err, os.ErrNotExist) {
					_ = os.Remove(full)
				}
			case isArtifactName(name):
				files = append(files, storedFile{
					key:     partition + "/" + name,
					path:    full,
					size:    info.Size(),
					modTime: info.ModTime(),
				})
			}
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime.Equal(files[j].modTime) {
			return files[i].key < files[j].key
		}
		return files[i].modTime.Before(files[j].modTime)
	})

	var total int64
	for _, f := range files {
		total += f.size
	}

	remove := func(f storedFile) {
		existed, err := s.removeFiles(f.key)
		if err != nil {
			logger.Warn.Printf("sweep: failed to delete %s: %v", f.key, err)
			return
		}
		total -= f.size
		if !existed {
			return
		}
		result.DeletedCount++
		result.FreedBytes += f.size
		result.DeletedKeys = append(result.DeletedKeys, f.key)
	}

	kept := files[:0]
	for _, f := range files {
		if policy.MaxAge > 0 && now.Sub(f.modTime) > policy.MaxAge {
			remove(f)
			continue
		}
		kept = append(kept, f)
	}

	if policy.MaxTotalBytes > 0 {
		for _, f := range kept {
			if total <= policy.MaxTotalBytes {
				break
			}
			remove(f)
		}
	}

	for _, partition := range partitions {
		if err := os.Remove(filepath.Join(s.root, partition)); err == nil {
			result.RemovedDirs++
		}
	}

	return result, nil
}

// partitions lists the date directories under the root, oldest first.
func (s *Store) partitions() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read storage root: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := time.Parse(domain.PartitionLayout, e.Name()); err != nil {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}
