package queue

import (
	"strings"
	"time"
)

// Kind distinguishes the two video types a batch produces.
type Kind string

const (
	KindStory Kind = "story"
	KindReel  Kind = "reel"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPlanning   Status = "planning"
	StatusPlanned    Status = "planned"
	StatusVoicing    Status = "voicing"
	StatusVoiced     Status = "voiced"
	StatusRendering  Status = "rendering"
	StatusRendered   Status = "rendered"
	StatusOrganizing Status = "organizing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusReview     Status = "review"
)

var allStatuses = []Status{
	StatusPending,
	StatusPlanning,
	StatusPlanned,
	StatusVoicing,
	StatusVoiced,
	StatusRendering,
	StatusRendered,
	StatusOrganizing,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusPlanning:   {},
	StatusVoicing:    {},
	StatusRendering:  {},
	StatusOrganizing: {},
}

type statusTransition struct {
	from Status
	to   Status
}

// stageRollbackTransitions return an interrupted item to the status its
// current stage consumes, so a rerun picks it up cleanly.
var stageRollbackTransitions = []statusTransition{
	{from: StatusPlanning, to: StatusPending},
	{from: StatusVoicing, to: StatusPlanned},
	{from: StatusRendering, to: StatusVoiced},
	{from: StatusOrganizing, to: StatusRendered},
}

// Item represents one render job persisted in SQLite.
type Item struct {
	ID              int64
	Kind            Kind
	ContentID       string
	Title           string
	Body            string
	NarrationText   string
	BackgroundTheme string
	MusicMood       string
	ShowTitle       *bool
	Status          Status
	ErrorMessage    string
	CuesJSON        string
	BackgroundFile  string
	CTAFile         string
	MusicFile       string
	NarrationFile   string
	RenderedFile    string
	FinalFile       string
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindStory:
		return KindStory, true
	case KindReel:
		return KindReel, true
	default:
		return "", false
	}
}

// IsProcessing returns true when the status reflects an in-flight stage.
func (i Item) IsProcessing() bool {
	_, ok := processingStatuses[i.Status]
	return ok
}

// IsTerminal reports whether the item needs no further work.
func (i Item) IsTerminal() bool {
	switch i.Status {
	case StatusCompleted, StatusFailed, StatusReview:
		return true
	default:
		return false
	}
}

// SetProgress updates the progress triple in one step.
func (i *Item) SetProgress(stage, message string, percent float64) {
	i.ProgressStage = stage
	i.ProgressMessage = message
	i.ProgressPercent = percent
}

// SetFailed marks the item failed (or in review) with an error message.
func (i *Item) SetFailed(status Status, message string) {
	if status != StatusReview {
		status = StatusFailed
	}
	i.Status = status
	i.ErrorMessage = message
	i.ProgressPercent = 0
	i.ProgressMessage = message
	i.ProgressStage = "failed"
}
