package operations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicatorcli/internal/dataprocessing"
)

func TestGroupRun_Lifecycle(t *testing.T) {
	run := NewGroupRun(dataprocessing.GroupDependent)
	assert.Equal(t, StateEmpty, run.State())
	assert.Nil(t, run.EndTime)

	require.NoError(t, run.Transition(StateAccumulating))
	for i := 0; i < 3; i++ {
		require.NoError(t, run.Transition(StateAccumulating))
	}
	assert.Equal(t, 3, run.Files())

	require.NoError(t, run.Transition(StateFinalizing))
	require.NoError(t, run.Transition(StateGapFilled))
	require.NoError(t, run.Transition(StateEmitted))

	assert.Equal(t, StateEmitted, run.State())
	assert.True(t, run.State().Terminal())
	assert.NotNil(t, run.EndTime)
	assert.GreaterOrEqual(t, run.Duration().Nanoseconds(), int64(0))
}

func TestGroupRun_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []GroupState
		to   GroupState
	}{
		{name: "finalize before accumulating", to: StateFinalizing},
		{name: "skip finalizing", path: []GroupState{StateAccumulating}, to: StateGapFilled},
		{name: "emit before filling", path: []GroupState{StateAccumulating, StateFinalizing}, to: StateEmitted},
		{name: "back to empty", path: []GroupState{StateAccumulating}, to: StateEmpty},
		{name: "re-enter after emit", path: []GroupState{StateAccumulating, StateFinalizing, StateGapFilled, StateEmitted}, to: StateAccumulating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := NewGroupRun(dataprocessing.GroupIndependent)
			for _, s := range tt.path {
				require.NoError(t, run.Transition(s))
			}
			before := run.State()

			err := run.Transition(tt.to)
			require.Error(t, err)
			assert.Equal(t, ErrorTypeInvalidState, GetErrorType(err))
			assert.Equal(t, before, run.State())
		})
	}
}

func TestGroupRun_Fail(t *testing.T) {
	run := NewGroupRun(dataprocessing.GroupDependent)
	require.NoError(t, run.Transition(StateAccumulating))

	boom := errors.New("boom")
	run.Fail(boom)
	assert.Equal(t, StateFailed, run.State())
	assert.Equal(t, boom, run.Err())
	assert.NotNil(t, run.EndTime)

	// failed is terminal
	assert.Error(t, run.Transition(StateFinalizing))

	emitted := NewGroupRun(dataprocessing.GroupDependent)
	for _, s := range []GroupState{StateAccumulating, StateFinalizing, StateGapFilled, StateEmitted} {
		require.NoError(t, emitted.Transition(s))
	}
	emitted.Fail(boom)
	assert.Equal(t, StateEmitted, emitted.State())
	assert.NoError(t, emitted.Err())
}
