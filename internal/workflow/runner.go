package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reelsmith/internal/config"
	"reelsmith/internal/logging"
	"reelsmith/internal/notifications"
	"reelsmith/internal/queue"
	"reelsmith/internal/services"
)

// Stage is one pipeline step. Execute mutates the item; the runner persists
// it afterwards.
type Stage interface {
	Name() string
	Execute(ctx context.Context, item *queue.Item) error
}

// Stages bundles the four pipeline steps in order.
type Stages struct {
	Plan     Stage
	Voice    Stage
	Render   Stage
	Organize Stage
}

type binding struct {
	stage   Stage
	from    queue.Status
	working queue.Status
	done    queue.Status
}

// Summary reports what a batch run accomplished.
type Summary struct {
	Processed int
	Failed    int
	Duration  time.Duration
}

// Runner drains the queue sequentially. One item failure never stops the
// batch.
type Runner struct {
	store    *queue.Store
	notifier notifications.Service
	logger   *slog.Logger
	bindings []binding
}

func NewRunner(cfg *config.Config, store *queue.Store, notifier notifications.Service, logger *slog.Logger, stages Stages) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Runner{
		store:    store,
		notifier: notifier,
		logger:   logging.NewComponentLogger(logger, "workflow"),
		bindings: []binding{
			{stages.Plan, queue.StatusPending, queue.StatusPlanning, queue.StatusPlanned},
			{stages.Voice, queue.StatusPlanned, queue.StatusVoicing, queue.StatusVoiced},
			{stages.Render, queue.StatusVoiced, queue.StatusRendering, queue.StatusRendered},
			{stages.Organize, queue.StatusRendered, queue.StatusOrganizing, queue.StatusCompleted},
		},
	}
}

// Run processes everything the queue holds until no claimable work remains
// or the context is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	var summary Summary

	if reset, err := r.store.ResetStuck(ctx); err != nil {
		return summary, fmt.Errorf("reset stuck items: %w", err)
	} else if reset > 0 {
		r.logger.InfoContext(ctx, "reset interrupted items", logging.Int64("count", reset))
	}

	pending, err := r.store.List(ctx, queue.StatusPending)
	if err != nil {
		return summary, fmt.Errorf("count pending items: %w", err)
	}
	if len(pending) > 0 {
		if err := r.notifier.NotifyBatchStarted(ctx, len(pending)); err != nil {
			r.logger.WarnContext(ctx, "batch-start notification failed", logging.Error(err))
		}
	}

	claimable := make([]queue.Status, 0, len(r.bindings))
	for _, b := range r.bindings {
		claimable = append(claimable, b.from)
	}

	for {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		item, err := r.store.NextForStatuses(ctx, claimable...)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("claim next item: %w", err)
		}
		if item == nil {
			break
		}

		r.runStage(ctx, item, &summary)
	}

	summary.Duration = time.Since(start)
	if summary.Processed > 0 || summary.Failed > 0 {
		if err := r.notifier.NotifyBatchCompleted(ctx, summary.Processed, summary.Failed, summary.Duration); err != nil {
			r.logger.WarnContext(ctx, "batch-complete notification failed", logging.Error(err))
		}
	}
	return summary, nil
}

func (r *Runner) runStage(ctx context.Context, item *queue.Item, summary *Summary) {
	b, ok := r.bindingFor(item.Status)
	if !ok {
		// Claimable statuses always map to a binding.
		return
	}

	stageCtx := services.WithItemID(ctx, item.ID)
	stageCtx = services.WithStage(stageCtx, b.stage.Name())
	stageCtx = services.WithRequestID(stageCtx, uuid.NewString())

	item.Status = b.working
	if err := r.store.Update(stageCtx, item); err != nil {
		r.logger.ErrorContext(stageCtx, "claim item", logging.Error(err))
		summary.Failed++
		return
	}

	r.logger.InfoContext(stageCtx, "stage started",
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String(logging.FieldStage, b.stage.Name()),
		logging.String("kind", string(item.Kind)))

	if err := b.stage.Execute(stageCtx, item); err != nil {
		item.SetFailed(services.FailureStatus(err), err.Error())
		if updateErr := r.store.Update(stageCtx, item); updateErr != nil {
			r.logger.ErrorContext(stageCtx, "persist failure", logging.Error(updateErr))
		}
		r.logger.ErrorContext(stageCtx, "stage failed",
			logging.Int64(logging.FieldItemID, item.ID),
			logging.String(logging.FieldStage, b.stage.Name()),
			logging.Error(err))
		if notifyErr := r.notifier.NotifyItemFailed(stageCtx, r.itemLabel(item), err); notifyErr != nil {
			r.logger.WarnContext(stageCtx, "failure notification failed", logging.Error(notifyErr))
		}
		summary.Failed++
		return
	}

	item.Status = b.done
	item.ErrorMessage = ""
	if err := r.store.Update(stageCtx, item); err != nil {
		r.logger.ErrorContext(stageCtx, "persist stage result", logging.Error(err))
		summary.Failed++
		return
	}

	if b.done == queue.StatusCompleted {
		summary.Processed++
		if err := r.notifier.NotifyVideoCompleted(stageCtx, r.itemLabel(item), item.FinalFile); err != nil {
			r.logger.WarnContext(stageCtx, "completion notification failed", logging.Error(err))
		}
	}
}

func (r *Runner) bindingFor(status queue.Status) (binding, bool) {
	for _, b := range r.bindings {
		if b.from == status {
			return b, true
		}
	}
	return binding{}, false
}

func (r *Runner) itemLabel(item *queue.Item) string {
	if item.Title != "" {
		return item.Title
	}
	return fmt.Sprintf("%s %s", item.Kind, item.ContentID)
}
