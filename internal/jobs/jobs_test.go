package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingGenerator struct {
	mu    sync.Mutex
	seen  []kernel.UUID
	done  chan struct{}
	block chan struct{}
	err   error
}

func (g *recordingGenerator) Handle(_ context.Context, cmd commands.GenerateContractDocumentCommand) error {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	g.seen = append(g.seen, cmd.OrderID())
	g.mu.Unlock()
	g.done <- struct{}{}
	return g.err
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the worker")
	}
}

func TestContractDocumentQueue_GeneratesEnqueuedOrders(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gen := &recordingGenerator{done: make(chan struct{}, 2), err: errors.New("bucket unavailable")}
	queue := jobs.NewContractDocumentQueue(gen, 2, 4, zap.New(core))
	require.NoError(t, queue.Start(context.Background()))

	first, second := kernel.NewUUID(), kernel.NewUUID()
	queue.Enqueue(first, kernel.NewUUID())
	queue.Enqueue(second, kernel.NewUUID())
	waitFor(t, gen.done)
	waitFor(t, gen.done)
	queue.Stop()

	gen.mu.Lock()
	defer gen.mu.Unlock()
	assert.ElementsMatch(t, []kernel.UUID{first, second}, gen.seen)
	assert.Equal(t, 2, logs.FilterMessage("contract document generation failed").Len())
}

func TestContractDocumentQueue_DropsWhenFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gen := &recordingGenerator{done: make(chan struct{}, 4), block: make(chan struct{})}
	queue := jobs.NewContractDocumentQueue(gen, 1, 1, zap.New(core))

	queue.Enqueue(kernel.NewUUID(), kernel.NewUUID())
	queue.Enqueue(kernel.NewUUID(), kernel.NewUUID())

	assert.Equal(t, 1, logs.FilterMessage("contract document queue is full").Len())

	require.NoError(t, queue.Start(context.Background()))
	close(gen.block)
	waitFor(t, gen.done)
	queue.Stop()

	queue.Enqueue(kernel.NewUUID(), kernel.NewUUID())
	gen.mu.Lock()
	defer gen.mu.Unlock()
	assert.Len(t, gen.seen, 1)
}

type MockRetrier struct{ mock.Mock }

func (m *MockRetrier) Handle(ctx context.Context, cmd commands.RetryContractDocumentsCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func TestDocumentRetryJob_Run(t *testing.T) {
	retrier := new(MockRetrier)
	retrier.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RetryContractDocumentsCommand) bool {
		return cmd.Limit() == 7
	})).Return(nil).Once()

	jobs.NewDocumentRetryJob(retrier, "", 7, zap.NewNop()).Run()

	retrier.AssertExpectations(t)
}

func TestDocumentRetryJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewDocumentRetryJob(new(MockRetrier), "every now and then", 1, zap.NewNop())

	require.Error(t, job.Start(context.Background()))
}

type fakeJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j fakeJob) Start(context.Context) error {
	*j.events = append(*j.events, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		var events []string
		manager := jobs.NewJobManager(fakeJob{name: "a", events: &events}, fakeJob{name: "b", events: &events})

		require.NoError(t, manager.StartAll(context.Background()))
		manager.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
	})

	t.Run("failed start stops the started jobs", func(t *testing.T) {
		var events []string
		manager := jobs.NewJobManager(
			fakeJob{name: "a", events: &events},
			fakeJob{name: "b", events: &events, startErr: errors.New("bad schedule")},
			fakeJob{name: "c", events: &events},
		)

		err := manager.StartAll(context.Background())

		require.Error(t, err)
		assert.Equal(t, []string{"start a", "start b", "stop a"}, events)
	})
}
