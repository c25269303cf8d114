package sgai

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/ternarybob/arbor"
)

// DefaultPollInterval is the pause between two status polls.
const DefaultPollInterval = 3 * time.Second

// JobState is a state of the submit/poll state machine.
type JobState int

const (
	StateSubmitting JobState = iota
	StateImmediateDone
	StatePolling
	StateDone
	StateFailed
	StateTimedOut
)

func (s JobState) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateImmediateDone:
		return "immediate_done"
	case StatePolling:
		return "polling"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("JobState(%d)", int(s))
	}
}

// Terminal reports whether no transition leaves s.
func (s JobState) Terminal() bool {
	return s == StateImmediateDone || s == StateDone || s == StateFailed || s == StateTimedOut
}

// Outcome describes a finished Run. Trace lists every state entered, in order,
// and is populated on failure too.
type Outcome struct {
	Response JobResponse
	Elapsed  time.Duration
	Polls    int
	Trace    []JobState
}

// State returns the last state entered.
func (o Outcome) State() JobState {
	if len(o.Trace) == 0 {
		return StateSubmitting
	}
	return o.Trace[len(o.Trace)-1]
}

func (o *Outcome) enter(s JobState) {
	o.Trace = append(o.Trace, s)
}

// Engine turns a validated request into a terminal job response by
// submitting it and, when the API answers asynchronously, polling until the
// job completes, fails or the time budget runs out.
type Engine struct {
	sender       Sender
	budget       time.Duration
	pollInterval time.Duration
	logger       arbor.ILogger
	now          func() time.Time
	sleep        func(ctx context.Context, d time.Duration) error
}

// NewEngine creates an engine over sender. budget bounds the whole
// submit+poll session and every exchange within it.
func NewEngine(sender Sender, budget, pollInterval time.Duration, logger arbor.ILogger) *Engine {
	if budget <= 0 {
		budget = DefaultTimeout
	}
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = arbor.NewLogger()
	}
	return &Engine{
		sender:       sender,
		budget:       budget,
		pollInterval: pollInterval,
		logger:       logger,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

// Run submits body to spec.Path and drives the job to a terminal state.
// Outcome.Elapsed counts network exchanges only, never the pauses between polls.
func (e *Engine) Run(ctx context.Context, spec JobSpec, apiKey string, body any, onProgress ProgressFunc) (Outcome, error) {
	var out Outcome

	start := e.now()
	deadline := start.Add(e.budget)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	out.enter(StateSubmitting)
	submitted, err := e.sender.Send(ctx, http.MethodPost, spec.Path, apiKey, body)
	if err != nil {
		return out, fmt.Errorf("submit %s: %w", spec.Name, err)
	}
	out.Elapsed += submitted.Elapsed

	if IsSuccess(submitted.Body.Status()) {
		out.enter(StateImmediateDone)
		out.Response = submitted.Body
		e.logger.Debug().Str("job", spec.Name).Msg("Job completed on submission")
		return out, nil
	}

	id := submitted.Body.String(spec.IDField)
	if id == "" {
		return out, missingIDError(spec.IDField)
	}

	out.enter(StatePolling)
	e.logger.Debug().Str("job", spec.Name).Str(spec.IDField, id).Msg("Job accepted, polling for completion")

	pollPath := spec.PollPath(id)
	lastStatus := submitted.Body.Status()
	for e.now().Before(deadline) {
		polled, err := e.sender.Send(ctx, http.MethodGet, pollPath, apiKey, nil)
		if err != nil {
			return out, fmt.Errorf("poll %s: %w", pollPath, err)
		}
		out.Elapsed += polled.Elapsed
		out.Polls++

		lastStatus = polled.Body.Status()
		e.notify(onProgress, lastStatus)

		switch {
		case IsSuccess(lastStatus):
			out.enter(StateDone)
			out.Response = polled.Body
			e.logger.Debug().Str("job", spec.Name).Int("polls", out.Polls).Msg("Job completed")
			return out, nil
		case IsFailure(lastStatus):
			out.enter(StateFailed)
			return out, &JobFailedError{Reason: polled.Body.String("error")}
		}

		wait := e.pollInterval
		if remaining := deadline.Sub(e.now()); remaining < wait {
			wait = remaining
		}
		if wait <= 0 {
			break
		}
		if err := e.sleep(ctx, wait); err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				break
			}
			return out, &NetworkError{Message: err.Error(), Err: err}
		}
	}

	out.enter(StateTimedOut)
	return out, &PollingTimeoutError{Path: pollPath, LastStatus: lastStatus, Polls: out.Polls}
}

// notify delivers status to onProgress. A panicking callback is logged and
// otherwise ignored.
func (e *Engine) notify(onProgress ProgressFunc, status string) {
	if onProgress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			e.logger.Warn().
				Str("panic", fmt.Sprintf("%v", r)).
				Str("stack", string(buf[:n])).
				Msg("Progress callback panicked")
		}
	}()
	onProgress(status)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
