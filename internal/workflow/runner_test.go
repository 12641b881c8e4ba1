package workflow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"reelsmith/internal/queue"
	"reelsmith/internal/services"
	"reelsmith/internal/testsupport"
)

type fakeStage struct {
	name  string
	calls int
	fail  func(item *queue.Item) error
}

func (f *fakeStage) Name() string { return f.name }

func (f *fakeStage) Execute(_ context.Context, item *queue.Item) error {
	f.calls++
	if f.fail != nil {
		return f.fail(item)
	}
	return nil
}

func testStages() (Stages, map[string]*fakeStage) {
	stages := map[string]*fakeStage{
		"plan":     {name: "plan"},
		"voice":    {name: "voice"},
		"render":   {name: "render"},
		"organize": {name: "organize"},
	}
	return Stages{
		Plan:     stages["plan"],
		Voice:    stages["voice"],
		Render:   stages["render"],
		Organize: stages["organize"],
	}, stages
}

func seedItems(t *testing.T, store *queue.Store, n int) []*queue.Item {
	t.Helper()
	items := make([]*queue.Item, n)
	for i := range items {
		item, err := store.NewItem(context.Background(), &queue.Item{
			Kind:      queue.KindStory,
			ContentID: fmt.Sprintf("story-%d", i+1),
			Body:      "Some story text.",
		})
		if err != nil {
			t.Fatalf("NewItem() error = %v", err)
		}
		items[i] = item
	}
	return items
}

func TestRunProcessesAllStages(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)
	stages, fakes := testStages()
	seedItems(t, store, 2)

	runner := NewRunner(cfg, store, nil, nil, stages)
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Processed != 2 {
		t.Errorf("Processed = %d, want 2", summary.Processed)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}
	for name, stage := range fakes {
		if stage.calls != 2 {
			t.Errorf("stage %s ran %d times, want 2", name, stage.calls)
		}
	}

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for _, item := range items {
		if item.Status != queue.StatusCompleted {
			t.Errorf("item %d status = %q, want completed", item.ID, item.Status)
		}
	}
}

func TestRunContinuesPastFailures(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)
	stages, fakes := testStages()
	seedItems(t, store, 3)

	fakes["render"].fail = func(item *queue.Item) error {
		if item.ContentID == "story-2" {
			return fmt.Errorf("%w: encoder crashed", services.ErrExternalTool)
		}
		return nil
	}

	runner := NewRunner(cfg, store, nil, nil, stages)
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Processed != 2 {
		t.Errorf("Processed = %d, want 2", summary.Processed)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}

	failed, err := store.FindByContent(context.Background(), queue.KindStory, "story-2")
	if err != nil || failed == nil {
		t.Fatalf("FindByContent() = %v, %v", failed, err)
	}
	if failed.Status != queue.StatusFailed {
		t.Errorf("status = %q, want failed", failed.Status)
	}
	if failed.ErrorMessage == "" {
		t.Error("expected error message on failed item")
	}
}

func TestRunRoutesValidationErrorsToReview(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)
	stages, fakes := testStages()
	seedItems(t, store, 1)

	fakes["plan"].fail = func(*queue.Item) error {
		return fmt.Errorf("%w: story has no usable text", services.ErrValidation)
	}

	runner := NewRunner(cfg, store, nil, nil, stages)
	if _, err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	item, err := store.FindByContent(context.Background(), queue.KindStory, "story-1")
	if err != nil || item == nil {
		t.Fatalf("FindByContent() = %v, %v", item, err)
	}
	if item.Status != queue.StatusReview {
		t.Errorf("status = %q, want review", item.Status)
	}
}

func TestRunResumesInterruptedItems(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)
	stages, fakes := testStages()
	items := seedItems(t, store, 1)

	// Simulate a crash mid-render: the item was left in a working status.
	items[0].Status = queue.StatusRendering
	if err := store.Update(context.Background(), items[0]); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	runner := NewRunner(cfg, store, nil, nil, stages)
	summary, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Processed != 1 {
		t.Errorf("Processed = %d, want 1", summary.Processed)
	}
	// Rolled back to voiced, so plan and voice never re-ran.
	if fakes["plan"].calls != 0 || fakes["voice"].calls != 0 {
		t.Errorf("plan/voice calls = %d/%d, want 0/0", fakes["plan"].calls, fakes["voice"].calls)
	}
	if fakes["render"].calls != 1 || fakes["organize"].calls != 1 {
		t.Errorf("render/organize calls = %d/%d, want 1/1", fakes["render"].calls, fakes["organize"].calls)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.NewStore(t, cfg)
	stages, _ := testStages()
	seedItems(t, store, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(cfg, store, nil, nil, stages)
	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
