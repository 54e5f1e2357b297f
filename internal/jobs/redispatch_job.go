// Package jobs holds the scheduled background work, built on
// github.com/robfig/cron/v3. The only job today is the redispatcher,
// which retries courier assignment for orders nobody could serve when
// they were confirmed or when their courier rejected them.
package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// RedispatchJob periodically sweeps orders waiting for a courier and runs
// dispatch for each, oldest first. An order that still finds no courier
// just waits for the next tick.
type RedispatchJob struct {
	uowFactory commands.OrderUoWFactory
	dispatcher commands.DispatchOrderCommandHandler
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewRedispatchJob creates the redispatch job. The schedule is a
// six-field cron expression with a seconds column, e.g. "*/5 * * * * *".
func NewRedispatchJob(
	uowFactory commands.OrderUoWFactory,
	dispatcher commands.DispatchOrderCommandHandler,
	schedule string,
	logger *slog.Logger,
) *RedispatchJob {
	return &RedispatchJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "redispatch_job"),
	}
}

// Start schedules the sweep.
func (j *RedispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "redispatch sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "redispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the job. Already running sweeps finish on their own.
func (j *RedispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "redispatch job stopped")
}

func (j *RedispatchJob) sweep(ctx context.Context) error {
	waiting, err := j.awaitingOrders(ctx)
	if err != nil {
		return err
	}

	for _, waitingOrder := range waiting {
		cmd, cmdErr := commands.NewDispatchOrderCommand(waitingOrder.ID())
		if cmdErr != nil {
			return cmdErr
		}

		dispatchErr := j.dispatcher.Handle(ctx, cmd)
		switch {
		case dispatchErr == nil:
			j.logger.InfoContext(ctx, "order redispatched",
				"orderId", waitingOrder.ID().String(),
				"shortCode", waitingOrder.ShortCode())
		case errors.Is(dispatchErr, commands.ErrNoCourierAvailable):
			// Expected while no courier is free; the order stays queued.
		default:
			j.logger.ErrorContext(ctx, "order redispatch failed",
				"orderId", waitingOrder.ID().String(),
				"error", dispatchErr)
		}
	}

	return nil
}

func (j *RedispatchJob) awaitingOrders(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllAwaitingDispatch(ctx)
}
