package commands_test

import (
	"testing"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/document"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func documentSetup(t *testing.T, jobs int) (*MockUoW, *MockDocumentUoWFactory, []kernel.UUID) {
	t.Helper()
	uow := newMockUoW().expectTx(t.Context())
	ids := make([]kernel.UUID, 0, jobs)
	for range jobs {
		job, err := document.NewJob(kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)
		uow.jobs.items[job.OrderID()] = job
		ids = append(ids, job.OrderID())
	}
	factory := new(MockDocumentUoWFactory)
	factory.On("Create").Return(uow)
	return uow, factory, ids
}

func generate(t *testing.T, h commands.GenerateContractDocumentCommandHandler, orderID kernel.UUID) error {
	t.Helper()
	cmd, err := commands.NewGenerateContractDocumentCommand(orderID)
	require.NoError(t, err)
	return h.Handle(t.Context(), cmd)
}

func TestGenerateContractDocumentCommandHandler_Handle(t *testing.T) {
	uow, factory, ids := documentSetup(t, 1)
	generator := &stubGenerator{}
	h := commands.NewGenerateContractDocumentCommandHandler(factory, generator, 3, zap.NewNop())

	require.NoError(t, generate(t, h, ids[0]))

	job := uow.jobs.items[ids[0]]
	assert.Equal(t, document.JobSucceeded, job.Status())
	assert.Equal(t, 1, job.Attempts())

	require.NoError(t, generate(t, h, ids[0]))
	assert.Equal(t, 1, generator.calls, "a finished job is not generated twice")
}

func TestGenerateContractDocumentCommandHandler_Handle_GivesUp(t *testing.T) {
	uow, factory, ids := documentSetup(t, 1)
	generator := &stubGenerator{err: errBoom}
	h := commands.NewGenerateContractDocumentCommandHandler(factory, generator, 2, zap.NewNop())

	require.ErrorIs(t, generate(t, h, ids[0]), errBoom)
	job := uow.jobs.items[ids[0]]
	assert.Equal(t, document.JobPending, job.Status())
	assert.Equal(t, errBoom.Error(), job.LastError())

	require.ErrorIs(t, generate(t, h, ids[0]), errBoom)
	assert.Equal(t, document.JobFailed, job.Status())
	assert.Equal(t, 2, job.Attempts())

	require.NoError(t, generate(t, h, ids[0]))
	assert.Equal(t, 2, generator.calls)
	uow.AssertNumberOfCalls(t, "Commit", 2)
}

func TestGenerateContractDocumentCommandHandler_Handle_UnknownJob(t *testing.T) {
	_, factory, _ := documentSetup(t, 0)
	h := commands.NewGenerateContractDocumentCommandHandler(factory, &stubGenerator{}, 0, zap.NewNop())

	require.ErrorIs(t, generate(t, h, kernel.NewUUID()), errs.ErrObjectNotFound)
}

func TestRetryContractDocumentsCommandHandler_Handle(t *testing.T) {
	uow, factory, ids := documentSetup(t, 3)
	generator := &stubGenerator{}
	generateHandler := commands.NewGenerateContractDocumentCommandHandler(factory, generator, 0, zap.NewNop())
	h := commands.NewRetryContractDocumentsCommandHandler(factory, generateHandler, zap.NewNop())

	cmd, err := commands.NewRetryContractDocumentsCommand(2)
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, 2, generator.calls)

	require.NoError(t, h.Handle(t.Context(), cmd))
	assert.Equal(t, 3, generator.calls)
	for _, id := range ids {
		assert.Equal(t, document.JobSucceeded, uow.jobs.items[id].Status())
	}
}

func TestRetryContractDocumentsCommandHandler_Handle_FailuresDoNotStopTheBatch(t *testing.T) {
	uow, factory, ids := documentSetup(t, 2)
	generator := &stubGenerator{err: errBoom}
	generateHandler := commands.NewGenerateContractDocumentCommandHandler(factory, generator, 5, zap.NewNop())
	h := commands.NewRetryContractDocumentsCommandHandler(factory, generateHandler, zap.NewNop())

	cmd, err := commands.NewRetryContractDocumentsCommand(10)
	require.NoError(t, err)
	require.NoError(t, h.Handle(t.Context(), cmd))

	assert.Equal(t, 2, generator.calls)
	for _, id := range ids {
		assert.Equal(t, 1, uow.jobs.items[id].Attempts())
	}
}

func TestNewRetryContractDocumentsCommand(t *testing.T) {
	_, err := commands.NewRetryContractDocumentsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	var zero commands.RetryContractDocumentsCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrRetryContractDocumentsCommandIsNotConstructed)
}
