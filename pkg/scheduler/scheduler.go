// Package scheduler drives the two daily lifecycle passes: stage advancement
// and the task expire-and-generate pass. A single instance is assumed.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type StagePass interface {
	AdvanceStages(now time.Time) error
}

type TaskPass interface {
	ExpireAndGenerate(now time.Time) error
}

type Config struct {
	Location *time.Location
	StageAt  string // wall-clock "HH:MM" for the stage tick
	TaskAt   string // wall-clock "HH:MM" for the task tick
}

// Scheduler fires each tick once per local day, at or after its configured
// time. The stage tick is always evaluated before the task tick so a crop
// promoted today gets its new stage's tasks in the same window.
type Scheduler struct {
	stage StagePass
	task  TaskPass
	cfg   Config

	stageRunning atomic.Bool
	taskRunning  atomic.Bool
	lastStageDay string
	lastTaskDay  string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(stage StagePass, task TaskPass, cfg Config) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	for _, at := range []string{cfg.StageAt, cfg.TaskAt} {
		if _, _, err := parseClock(at); err != nil {
			return nil, err
		}
	}
	return &Scheduler{stage: stage, task: task, cfg: cfg}, nil
}

func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
	log.Printf("[sched] started: stage tick %s, task tick %s (%s)", s.cfg.StageAt, s.cfg.TaskAt, s.cfg.Location)
}

func (s *Scheduler) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now().In(s.cfg.Location)
			if s.dueStage(now) {
				s.RunStageTick(now)
			}
			if s.dueTask(now) {
				s.RunTaskTick(now)
			}
		}
	}
}

func (s *Scheduler) dueStage(now time.Time) bool {
	return due(now, s.cfg.StageAt, s.lastStageDay)
}

func (s *Scheduler) dueTask(now time.Time) bool {
	return due(now, s.cfg.TaskAt, s.lastTaskDay)
}

// due reports whether the local clock has reached at on a day the tick has
// not yet run. Firing on "at or after" rather than exactly at means a process
// started late still runs that day's tick.
func due(now time.Time, at, lastDay string) bool {
	h, m, _ := parseClock(at)
	if lastDay == now.Format("2006-01-02") {
		return false
	}
	fire := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	return !now.Before(fire)
}

// RunStageTick runs the stage pass once, skipping if a previous invocation
// is still in flight.
func (s *Scheduler) RunStageTick(now time.Time) {
	if !s.stageRunning.CompareAndSwap(false, true) {
		log.Printf("[sched] stage tick still running, skipping")
		return
	}
	defer s.stageRunning.Store(false)

	s.lastStageDay = now.Format("2006-01-02")
	log.Printf("[sched] stage tick")
	if err := s.stage.AdvanceStages(now); err != nil {
		log.Printf("[sched] stage tick: %v", err)
	}
}

// RunTaskTick runs the task pass once, skipping if a previous invocation is
// still in flight.
func (s *Scheduler) RunTaskTick(now time.Time) {
	if !s.taskRunning.CompareAndSwap(false, true) {
		log.Printf("[sched] task tick still running, skipping")
		return
	}
	defer s.taskRunning.Store(false)

	s.lastTaskDay = now.Format("2006-01-02")
	log.Printf("[sched] task tick")
	if err := s.task.ExpireAndGenerate(now); err != nil {
		log.Printf("[sched] task tick: %v", err)
	}
}

func parseClock(at string) (int, int, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad tick time %q, want HH:MM", at)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("bad tick hour in %q", at)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("bad tick minute in %q", at)
	}
	return h, m, nil
}
