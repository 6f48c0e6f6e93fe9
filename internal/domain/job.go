package domain

import (
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"
)

// MaxClipDuration is the default upper bound on end - start.
const MaxClipDuration = 180 * time.Second

type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusWorking JobStatus = "working"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
)

// Stage labels written to the job record while it is working.
const (
	StageQueued     = "Queued"
	StageResolving  = "Resolving formats"
	StageDownload   = "Downloading"
	StageTrimming   = "Trimming"
	StagePublishing = "Publishing"
	StageDone       = "Done"
	StageFailed     = "Failed"
)

// Progress checkpoints reached when the corresponding stage completes.
const (
	ProgressResolved   = 10
	ProgressDownloaded = 35
	ProgressTrimmed    = 70
	ProgressPublished  = 90
	ProgressComplete   = 100
)

// ArtifactRef is what a done job keeps of its published artifact.
type ArtifactRef struct {
	StorageKey string `json:"storage_key"`
	Checksum   string `json:"checksum"`
	SizeBytes  int64  `json:"size_bytes"`
}

type Job struct {
	ID              string       `json:"id"`
	URL             string       `json:"url"`
	Start           float64      `json:"start"`
	End             float64      `json:"end"`
	RequestedFormat string       `json:"requested_format,omitempty"`
	RequestedHeight int          `json:"requested_height,omitempty"`
	Status          JobStatus    `json:"status"`
	Progress        int          `json:"progress"`
	Stage           string       `json:"stage"`
	WorkerID        string       `json:"worker_id,omitempty"`
	Title           string       `json:"title,omitempty"`
	FormatID        string       `json:"format_id,omitempty"`
	Artifact        *ArtifactRef `json:"artifact,omitempty"`
	Error           *JobError    `json:"error,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	StartedAt       time.Time    `json:"started_at,omitzero"`
	HeartbeatAt     time.Time    `json:"heartbeat_at,omitzero"`
	CompletedAt     time.Time    `json:"completed_at,omitzero"`
}

// NewJob builds a queued job. The caller supplies the identifier.
func NewJob(id string, req SubmitRequest, now time.Time) *Job {
	return &Job{
		ID:              id,
		URL:             strings.TrimSpace(req.URL),
		Start:           req.Start,
		End:             req.End,
		RequestedFormat: strings.TrimSpace(req.RequestedFormat),
		RequestedHeight: req.RequestedHeight,
		Status:          JobStatusQueued,
		Stage:           StageQueued,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (j *Job) Duration() float64 {
	return j.End - j.Start
}

// Claim moves a queued job to working for workerID. It reports false if the job was not queued.
func (j *Job) Claim(workerID string, now time.Time) bool {
	if j.Status != JobStatusQueued {
		return false
	}
	j.Status = JobStatusWorking
	j.WorkerID = workerID
	j.Progress = 0
	j.Stage = StageResolving
	j.StartedAt = now
	j.HeartbeatAt = now
	j.UpdatedAt = now
	return true
}

// Advance records stage progress. Progress never moves backwards.
func (j *Job) Advance(progress int, stage string, now time.Time) {
	if progress > j.Progress {
		j.Progress = progress
	}
	j.Stage = stage
	j.HeartbeatAt = now
	j.UpdatedAt = now
}

func (j *Job) MarkDone(ref ArtifactRef, now time.Time) {
	j.Status = JobStatusDone
	j.Progress = ProgressComplete
	j.Stage = StageDone
	j.Artifact = &ref
	j.Error = nil
	j.CompletedAt = now
	j.UpdatedAt = now
}

func (j *Job) MarkFailed(jerr *JobError, now time.Time) {
	j.Status = JobStatusError
	j.Stage = StageFailed
	j.Error = jerr
	j.CompletedAt = now
	j.UpdatedAt = now
}

// OwnedBy reports whether workerID may still write working transitions for this job.
func (j *Job) OwnedBy(workerID string) bool {
	return j.Status == JobStatusWorking && j.WorkerID == workerID
}

// SubmitRequest is what the submission side hands to the orchestrator.
type SubmitRequest struct {
	URL             string
	Start           float64
	End             float64
	RequestedFormat string
	// RequestedHeight is the height of RequestedFormat as the caller saw it, 0 if unknown.
	RequestedHeight int
}

// ValidateClipRequest checks the request shape. Callers are expected to validate upstream;
// this is the orchestrator's own guard.
func ValidateClipRequest(req SubmitRequest, maxDuration time.Duration) error {
	u, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return NewJobError(KindInvalidRequest, fmt.Sprintf("invalid source url %q", req.URL))
	}
	if !finite(req.Start) || !finite(req.End) {
		return NewJobError(KindInvalidRequest, "start and end must be finite numbers")
	}
	if req.Start < 0 {
		return NewJobError(KindInvalidRequest, "start must not be negative")
	}
	if req.End <= req.Start {
		return NewJobError(KindInvalidRequest, "end must be after start")
	}
	if maxDuration > 0 && req.End-req.Start > maxDuration.Seconds() {
		return NewJobError(KindInvalidRequest,
			fmt.Sprintf("clip of %.2fs exceeds the %.0fs limit", req.End-req.Start, maxDuration.Seconds()))
	}
	if req.RequestedHeight < 0 {
		return NewJobError(KindInvalidRequest, "requested height must not be negative")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// JobStatusView is the read model exposed to pollers.
type JobStatusView struct {
	ID       string       `json:"id"`
	Status   JobStatus    `json:"status"`
	Progress int          `json:"progress"`
	Stage    string       `json:"stage"`
	Result   *ArtifactRef `json:"result,omitempty"`
	Error    *JobError    `json:"error,omitempty"`
}

func (j *Job) View() *JobStatusView {
	v := &JobStatusView{
		ID:       j.ID,
		Status:   j.Status,
		Progress: j.Progress,
		Stage:    j.Stage,
	}
	switch j.Status {
	case JobStatusDone:
		v.Result = j.Artifact
	case JobStatusError:
		v.Error = j.Error
	}
	return v
}
