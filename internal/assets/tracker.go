package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const trackerFileName = "asset_state.json"

type trackerState struct {
	Rotation  map[string]int    `json:"rotation"`
	UsedHooks map[string]string `json:"used_hooks"`
}

// Tracker persists asset rotation positions and used hook IDs across runs.
// Access is guarded with a file lock so parallel invocations stay consistent.
type Tracker struct {
	path string
	lock *flock.Flock
}

// NewTracker returns a tracker rooted in the given tracking directory.
func NewTracker(trackingDir string) *Tracker {
	path := filepath.Join(trackingDir, trackerFileName)
	return &Tracker{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// NextIndex advances the rotation position for the named pool and returns
// the index to use. The position wraps when the pool size changes or the end
// is reached.
func (t *Tracker) NextIndex(pool string, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("empty pool %q", pool)
	}

	var index int
	err := t.withState(func(state *trackerState) error {
		index = state.Rotation[pool] % size
		state.Rotation[pool] = (index + 1) % size
		return nil
	})
	return index, err
}

// MarkHookUsed records that a hook has been turned into a reel.
func (t *Tracker) MarkHookUsed(hookID string) error {
	return t.withState(func(state *trackerState) error {
		state.UsedHooks[hookID] = time.Now().UTC().Format(time.RFC3339)
		return nil
	})
}

// HookUsed reports whether a hook has already been used.
func (t *Tracker) HookUsed(hookID string) (bool, error) {
	var used bool
	err := t.withState(func(state *trackerState) error {
		_, used = state.UsedHooks[hookID]
		return nil
	})
	return used, err
}

func (t *Tracker) withState(fn func(*trackerState) error) error {
	if err := t.lock.Lock(); err != nil {
		return fmt.Errorf("lock tracker: %w", err)
	}
	defer func() { _ = t.lock.Unlock() }()

	state, err := t.readState()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return t.writeState(state)
}

func (t *Tracker) readState() (*trackerState, error) {
	state := &trackerState{
		Rotation:  make(map[string]int),
		UsedHooks: make(map[string]string),
	}

	data, err := os.ReadFile(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tracker state: %w", err)
	}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parse tracker state: %w", err)
	}
	if state.Rotation == nil {
		state.Rotation = make(map[string]int)
	}
	if state.UsedHooks == nil {
		state.UsedHooks = make(map[string]string)
	}
	return state, nil
}

func (t *Tracker) writeState(state *trackerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tracker state: %w", err)
	}

	tmp := t.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tracker state: %w", err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("replace tracker state: %w", err)
	}
	return nil
}
