package jobs

import (
	"context"

	"workshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultDocumentRetrySchedule runs the retry job once a minute.
const DefaultDocumentRetrySchedule = "0 * * * * *"

type documentRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryContractDocumentsCommand) error
}

// DocumentRetryJob re-runs pending contract document jobs on a cron schedule
// with a seconds field.
type DocumentRetryJob struct {
	handler  documentRetrier
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewDocumentRetryJob(handler documentRetrier, schedule string, batch int, logger *zap.Logger) *DocumentRetryJob {
	if schedule == "" {
		schedule = DefaultDocumentRetrySchedule
	}
	if batch <= 0 {
		batch = 50
	}
	return &DocumentRetryJob{
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "document_retry_job")),
	}
}

func (j *DocumentRetryJob) Start(context.Context) error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("document retry job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one retry pass.
func (j *DocumentRetryJob) Run() {
	ctx := context.Background()
	cmd, err := commands.NewRetryContractDocumentsCommand(j.batch)
	if err != nil {
		j.logger.Error("invalid retry batch", zap.Error(err))
		return
	}
	if err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.Error("document retry job failed", zap.Error(err))
	}
}

func (j *DocumentRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("document retry job stopped")
}
