package tui

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type jobKind string

type jobStatus string

const (
	jobKindAsk     jobKind = "ask"
	jobKindManual  jobKind = "manual"
	jobKindArchive jobKind = "archive"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	log     *logrus.Logger
}

func newJobBus(log *logrus.Logger) *jobBus {
	return &jobBus{log: log}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start announces the job, then runs it with timeout. A zero timeout leaves
// the runner unbounded.
func (b *jobBus) Start(kind jobKind, timeout time.Duration, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}
	return tea.Sequence(startCmd, b.runCmd(id, kind, started, timeout, runner))
}

func (b *jobBus) runCmd(id string, kind jobKind, started time.Time, timeout time.Duration, runner jobRunner) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		entry := b.log.WithFields(logrus.Fields{
			"job":      id,
			"kind":     string(kind),
			"status":   string(snapshot.Status),
			"duration": snapshot.Duration.Round(time.Millisecond).String(),
		})
		if err != nil {
			entry.WithError(err).Warn("[jobs] finished")
		} else {
			entry.Info("[jobs] finished")
		}
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}
}
