package commands

import (
	"errors"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var ErrRetryContractDocumentsCommandIsNotConstructed = errors.New(
	"RetryContractDocumentsCommand must be created via NewRetryContractDocumentsCommand constructor",
)

// RetryContractDocumentsCommand picks up to Limit pending document jobs.
type RetryContractDocumentsCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewRetryContractDocumentsCommand(limit int) (RetryContractDocumentsCommand, error) {
	if limit <= 0 {
		return RetryContractDocumentsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return RetryContractDocumentsCommand{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c RetryContractDocumentsCommand) Validate() error {
	return c.guard.Validate(ErrRetryContractDocumentsCommandIsNotConstructed)
}

func (c RetryContractDocumentsCommand) Limit() int { return c.limit }
