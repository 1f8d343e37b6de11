// Package document tracks contract document generation for finalized orders.
package document

import (
	"errors"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"
)

var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Job is the contract document request of one order. There is at most one job
// per order; a failed attempt leaves it pending until attempts run out.
type Job struct {
	orderID       kernel.UUID
	actorID       kernel.UUID
	status        JobStatus
	attempts      int
	lastError     string
	updatedAt     time.Time
	isConstructed bool
}

func NewJob(orderID, actorID kernel.UUID) (*Job, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if actorID.IsZero() {
		return nil, errs.NewValueIsRequiredError("actor_id")
	}
	return &Job{orderID: orderID, actorID: actorID, status: JobPending, updatedAt: now(), isConstructed: true}, nil
}

func RestoreJob(orderID, actorID kernel.UUID, status JobStatus, attempts int, lastError string, updatedAt time.Time) (*Job, error) {
	j, err := NewJob(orderID, actorID)
	if err != nil {
		return nil, err
	}
	j.status = status
	j.attempts = attempts
	j.lastError = lastError
	j.updatedAt = updatedAt
	return j, nil
}

func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) OrderID() kernel.UUID { return j.orderID }
func (j *Job) ActorID() kernel.UUID { return j.actorID }
func (j *Job) Status() JobStatus    { return j.status }
func (j *Job) Attempts() int        { return j.attempts }
func (j *Job) LastError() string    { return j.lastError }
func (j *Job) UpdatedAt() time.Time { return j.updatedAt }

// IsDue reports whether another attempt should be made.
func (j *Job) IsDue() bool {
	return j.status == JobPending
}

func (j *Job) Succeed() {
	j.attempts++
	j.status = JobSucceeded
	j.lastError = ""
	j.updatedAt = now()
}

// Fail records a failed attempt. After maxAttempts the job is given up.
func (j *Job) Fail(cause error, maxAttempts int) {
	j.attempts++
	if cause != nil {
		j.lastError = cause.Error()
	}
	if j.attempts >= maxAttempts {
		j.status = JobFailed
	}
	j.updatedAt = now()
}

var now = func() time.Time { return time.Now().UTC() }
