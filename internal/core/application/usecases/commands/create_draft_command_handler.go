package commands

import (
	"context"
	"errors"
	"time"

	"workshop/internal/core/domain/model/draft"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"
)

// DefaultDraftQuota is the number of open drafts an actor may hold when no
// quota is configured.
const DefaultDraftQuota = 5

// QuotaLockTTL bounds how long a crashed draft creation holds the actor's quota lock.
const QuotaLockTTL = 10 * time.Second

// CreateDraftCommandHandler creates drafts within the per-actor quota of open,
// incomplete drafts. Count and insert run under the actor's quota lock.
type CreateDraftCommandHandler struct {
	uowFactory DraftUoWFactory
	locker     ports.Locker
	quota      int
}

func NewCreateDraftCommandHandler(uowFactory DraftUoWFactory, locker ports.Locker, quota int) CreateDraftCommandHandler {
	if quota <= 0 {
		quota = DefaultDraftQuota
	}
	return CreateDraftCommandHandler{uowFactory: uowFactory, locker: locker, quota: quota}
}

func (h CreateDraftCommandHandler) Handle(ctx context.Context, cmd CreateDraftCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	release, err := lockQuota(ctx, h.locker, cmd.ActorID())
	if err != nil {
		return err
	}
	defer func() {
		_ = release(context.WithoutCancel(ctx))
	}()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DraftRepository()
	if err = checkQuota(ctx, repo, cmd.ActorID(), h.quota); err != nil {
		return err
	}

	d, err := draft.NewDraft(cmd.DraftID(), cmd.ActorID(), cmd.CustomerID(), cmd.BranchID())
	if err != nil {
		return err
	}
	if err = repo.Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// lockQuota serializes draft creation per actor until the caller commits.
func lockQuota(ctx context.Context, locker ports.Locker, actor kernel.UUID) (func(context.Context) error, error) {
	release, err := locker.Acquire(ctx, "drafts:"+actor.String(), QuotaLockTTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) {
			return nil, errs.NewStateConflictError("draft quota", "draft creation in progress", "create draft")
		}
		return nil, err
	}
	return release, nil
}

func checkQuota(ctx context.Context, repo ports.DraftRepository, actor kernel.UUID, quota int) error {
	open, err := repo.CountOpenByOwner(ctx, actor)
	if err != nil {
		return err
	}
	if open >= quota {
		return errs.NewQuotaExceededError(quota, open)
	}
	return nil
}
