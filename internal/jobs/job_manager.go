package jobs

import (
	"context"
	"fmt"
)

// Job is a background component with a start and stop lifecycle.
type Job interface {
	Start(ctx context.Context) error
	Stop()
}

// JobManager starts and stops the background jobs together.
type JobManager struct {
	jobs    []Job
	started []Job
}

func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts the jobs in order. When one fails the ones already started
// are stopped again.
func (jm *JobManager) StartAll(ctx context.Context) error {
	for i, job := range jm.jobs {
		if err := job.Start(ctx); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d (%T): %w", i, job, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
