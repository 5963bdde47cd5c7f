package util

import (
	"fmt"
	"math"
	"time"
)

type TimerState struct {
	name           string
	lastDuration   float64
	totalDuration  float64
	executionCount int64
	minDuration    float64
	maxDuration    float64
}

func (t *TimerState) AverageDuration() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) LastDuration() float64 {
	return t.lastDuration
}

func (t *TimerState) String() string {
	return fmt.Sprintf("%s last: %.3fms, avg: %.3fms, min: %.3fms, max: %.3fms (%d runs)", t.name, t.lastDuration, t.AverageDuration(), t.minDuration, t.maxDuration, t.executionCount)
}

// Timer keeps running statistics for named sections of the frame, in milliseconds.
type Timer struct {
	states     map[string]*TimerState
	timerNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
	}
}

func (t *Timer) GetState(name string) *TimerState {
	return t.states[name]
}

func (t *Timer) String() string {
	var str string
	for _, name := range t.timerNames {
		str += t.states[name].String() + "\n"
	}
	return str
}

// Start begins measuring name. Calling the returned func stops it and reports the duration.
func (t *Timer) Start(name string) func() float64 {
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{
			name:        name,
			minDuration: math.MaxFloat64,
		}
		t.states[name] = state
	}
	start := time.Now()
	return func() float64 {
		durationInMS := float64(time.Since(start).Microseconds()) / 1000.0
		state.lastDuration = durationInMS
		state.totalDuration += durationInMS
		state.executionCount++
		state.minDuration = math.Min(state.minDuration, durationInMS)
		state.maxDuration = math.Max(state.maxDuration, durationInMS)
		return durationInMS
	}
}
