package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/printworks/photomatrix/pkg/pipeline"
)

// JobStatus is the lifecycle state of a composite generation job.
type JobStatus string

const (
	StatusPending  JobStatus = "pending"
	StatusRunning  JobStatus = "running"
	StatusComplete JobStatus = "complete"
	StatusFailed   JobStatus = "failed"
)

// Job tracks one composite generation request from upload to delivery.
// Composite PNG bytes are held in memory until the job expires; clients
// fetch them via the composites endpoint.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Result is populated when Status is complete.
	Result *pipeline.Result `json:"-"`

	// Composites summarizes the outputs for status responses.
	Composites []pipeline.Composite `json:"composites,omitempty"`
}

// IsExpired returns true if the job has exceeded its TTL.
func (j *Job) IsExpired() bool {
	return time.Now().After(j.ExpiresAt)
}

// JobStore is an in-memory job store with TTL-based expiry. Jobs and
// their composite bytes are transient; a restart loses them, which is
// acceptable because clients re-upload.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	ttl  time.Duration
}

// NewJobStore creates a store whose jobs expire after ttl.
func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

// Create registers a new pending job and returns it.
func (s *JobStore) Create() *Job {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()
	return job
}

// Get retrieves a job by ID. Returns nil if the job doesn't exist or
// has expired.
func (s *JobStore) Get(id string) *Job {
	s.mu.RLock()
	job := s.jobs[id]
	s.mu.RUnlock()
	if job == nil {
		return nil
	}
	if job.IsExpired() {
		s.mu.Lock()
		delete(s.jobs, id)
		s.mu.Unlock()
		return nil
	}
	return job
}

// Snapshot returns a copy of a live job taken under the lock, so
// handlers can serialize it while the background run mutates the
// original. The second return is false for missing or expired jobs.
func (s *JobStore) Snapshot(id string) (Job, bool) {
	job := s.Get(id)
	if job == nil {
		return Job{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *job, true
}

// Update applies fn to the job under the write lock.
func (s *JobStore) Update(id string, fn func(*Job)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		fn(job)
	}
}

// Cleanup removes expired jobs and returns how many were dropped.
func (s *JobStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, job := range s.jobs {
		if job.IsExpired() {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live jobs.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
