package operations

import (
	"sync"
	"time"

	"indicatorcli/internal/dataprocessing"
)

// GroupState is the lifecycle position of one group run
type GroupState string

const (
	StateEmpty        GroupState = "empty"
	StateAccumulating GroupState = "accumulating"
	StateFinalizing   GroupState = "finalizing"
	StateGapFilled    GroupState = "gap_filled"
	StateEmitted      GroupState = "emitted"
	StateFailed       GroupState = "failed"
)

// transitions lists the legal next states. Emitted and Failed are terminal.
var transitions = map[GroupState][]GroupState{
	StateEmpty:        {StateAccumulating},
	StateAccumulating: {StateAccumulating, StateFinalizing},
	StateFinalizing:   {StateGapFilled},
	StateGapFilled:    {StateEmitted},
}

// Terminal reports whether no further transition is possible
func (s GroupState) Terminal() bool {
	return s == StateEmitted || s == StateFailed
}

// GroupRun tracks the state of one group through a combine run
type GroupRun struct {
	mu sync.RWMutex

	Group     dataprocessing.Group
	state     GroupState
	files     int
	StartTime time.Time
	EndTime   *time.Time
	err       error
}

// NewGroupRun creates a run in the Empty state
func NewGroupRun(group dataprocessing.Group) *GroupRun {
	return &GroupRun{
		Group:     group,
		state:     StateEmpty,
		StartTime: time.Now(),
	}
}

// Transition moves the run to the next state. Each Accumulating to Accumulating
// step records one more handled file.
func (r *GroupRun) Transition(to GroupState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, next := range transitions[r.state] {
		if next != to {
			continue
		}
		if r.state == StateAccumulating && to == StateAccumulating {
			r.files++
		}
		r.state = to
		if to.Terminal() {
			now := time.Now()
			r.EndTime = &now
		}
		return nil
	}
	return NewInvalidStateError(r.Group.String(), r.state, to)
}

// Fail moves any non-terminal run to Failed
func (r *GroupRun) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.Terminal() {
		return
	}
	now := time.Now()
	r.state = StateFailed
	r.EndTime = &now
	r.err = err
}

// State returns the current state
func (r *GroupRun) State() GroupState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Files returns how many files were handled while accumulating
func (r *GroupRun) Files() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.files
}

// Err returns the failure cause, if any
func (r *GroupRun) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

// Duration returns the elapsed time, up to EndTime when finished
func (r *GroupRun) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}
	return time.Since(r.StartTime)
}
