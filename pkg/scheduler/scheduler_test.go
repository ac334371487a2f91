package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePass struct {
	calls   atomic.Int32
	block   chan struct{}
	release chan struct{}
}

func (f *fakePass) run() error {
	f.calls.Add(1)
	if f.block != nil {
		close(f.block)
		<-f.release
	}
	return nil
}

func (f *fakePass) AdvanceStages(time.Time) error     { return f.run() }
func (f *fakePass) ExpireAndGenerate(time.Time) error { return f.run() }

func newScheduler(t *testing.T, stage, task *fakePass) *Scheduler {
	t.Helper()
	s, err := New(stage, task, Config{StageAt: "01:00", TaskAt: "02:00", Location: time.UTC})
	require.NoError(t, err)
	return s
}

func TestNewRejectsBadClock(t *testing.T) {
	_, err := New(&fakePass{}, &fakePass{}, Config{StageAt: "25:00", TaskAt: "02:00"})
	assert.Error(t, err)

	_, err = New(&fakePass{}, &fakePass{}, Config{StageAt: "01:00", TaskAt: "0200"})
	assert.Error(t, err)
}

func TestTickFiresOncePerDay(t *testing.T) {
	stage := &fakePass{}
	s := newScheduler(t, stage, &fakePass{})

	day := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)

	require.True(t, s.dueStage(day))
	s.RunStageTick(day)
	assert.Equal(t, int32(1), stage.calls.Load())

	// same day, later: already ran
	assert.False(t, s.dueStage(day.Add(4*time.Hour)))

	// next day fires again
	next := day.AddDate(0, 0, 1)
	require.True(t, s.dueStage(next))
	s.RunStageTick(next)
	assert.Equal(t, int32(2), stage.calls.Load())
}

func TestTickNotDueBeforeConfiguredTime(t *testing.T) {
	s := newScheduler(t, &fakePass{}, &fakePass{})
	early := time.Date(2025, 3, 10, 0, 15, 0, 0, time.UTC)
	assert.False(t, s.dueStage(early))
	assert.False(t, s.dueTask(early))
}

func TestSkipWhileRunning(t *testing.T) {
	task := &fakePass{block: make(chan struct{}), release: make(chan struct{})}
	s := newScheduler(t, &fakePass{}, task)

	now := time.Date(2025, 3, 10, 2, 30, 0, 0, time.UTC)
	go s.RunTaskTick(now)
	<-task.block // first invocation is inside the pass

	// second invocation must be skipped, not queued
	s.RunTaskTick(now)
	assert.Equal(t, int32(1), task.calls.Load())

	close(task.release)
}

func TestStageTickIndependentOfTaskTick(t *testing.T) {
	stage := &fakePass{}
	task := &fakePass{}
	s := newScheduler(t, stage, task)

	now := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	require.True(t, s.dueStage(now))
	require.False(t, s.dueTask(now)) // task tick configured for 02:00

	s.RunStageTick(now)
	assert.Equal(t, int32(1), stage.calls.Load())
	assert.Equal(t, int32(0), task.calls.Load())
}
