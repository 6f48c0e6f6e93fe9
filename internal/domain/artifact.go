package domain

import (
	"path"
	"strings"
	"time"
)

// PartitionLayout is the date layout used for storage partitions.
const PartitionLayout = "2006-01-02"

// Artifact is a published clip file owned by the artifact store.
type Artifact struct {
	StorageKey string    `json:"storage_key"`
	Checksum   string    `json:"checksum"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

func (a *Artifact) Ref() ArtifactRef {
	return ArtifactRef{
		StorageKey: a.StorageKey,
		Checksum:   a.Checksum,
		SizeBytes:  a.SizeBytes,
	}
}

// StorageKey builds "{date}/{sanitized_title}_{job_id}.{ext}".
func StorageKey(publishedAt time.Time, logicalName, jobID string) string {
	ext := strings.TrimPrefix(path.Ext(logicalName), ".")
	base := strings.TrimSuffix(logicalName, path.Ext(logicalName))
	if ext == "" {
		ext = "mp4"
	}
	return publishedAt.UTC().Format(PartitionLayout) + "/" + SanitizeTitle(base) + "_" + jobID + "." + strings.ToLower(ext)
}

// ValidateStorageKey rejects keys that are not exactly "{partition}/{file}".
func ValidateStorageKey(key string) error {
	if key == "" || strings.ContainsRune(key, 0) || strings.Contains(key, "\\") {
		return ErrInvalidKey
	}
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		return ErrInvalidKey
	}
	if _, err := time.Parse(PartitionLayout, parts[0]); err != nil {
		return ErrInvalidKey
	}
	name := parts[1]
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return ErrInvalidKey
	}
	return nil
}

// RetentionPolicy drives an artifact sweep. Zero values disable the corresponding bound.
type RetentionPolicy struct {
	MaxAge        time.Duration
	MaxTotalBytes int64
}

type SweepResult struct {
	DeletedCount int      `json:"deleted_count"`
	FreedBytes   int64    `json:"freed_bytes"`
	DeletedKeys  []string `json:"deleted_keys,omitempty"`
	RemovedDirs  int      `json:"removed_dirs"`
	StaleTemps   int      `json:"stale_temps"`
}

// TrimStrategy names how the trim engine produced a clip.
type TrimStrategy string

const (
	TrimStreamCopy TrimStrategy = "copy"
	TrimHybrid     TrimStrategy = "hybrid"
	TrimReencode   TrimStrategy = "reencode"
)

// TrimRequest asks for [Start, End) of Source to be written under OutputDir.
type TrimRequest struct {
	Source    string
	Start     float64
	End       float64
	OutputDir string
	BaseName  string
}

func (r TrimRequest) Duration() float64 {
	return r.End - r.Start
}

type TrimResult struct {
	OutputPath string       `json:"output_path"`
	Strategy   TrimStrategy `json:"strategy"`
	Duration   float64      `json:"duration"`
	SizeBytes  int64        `json:"size_bytes"`
}
