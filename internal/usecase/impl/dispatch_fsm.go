package impl

import (
	"context"
	"log/slog"

	"github.com/looplab/fsm"
	"github.com/pkg/errors"
)

// Dispatch run states
const (
	stateStart       = "start"
	stateEnumerating = "enumerating"
	stateProcessing  = "processing"
	stateSummarizing = "summarizing"
	stateCompleted   = "completed"
	stateFailed      = "failed"
)

// Dispatch run events
const (
	eventEnumerate = "enumerate"
	eventProcess   = "process"
	eventSummarize = "summarize"
	eventComplete  = "complete"
	eventFail      = "fail"
)

// dispatchMachine tracks the phase of one dispatch run
type dispatchMachine struct {
	*fsm.FSM

	logger *slog.Logger
	reason error
}

func newDispatchMachine(logger *slog.Logger) *dispatchMachine {
	m := &dispatchMachine{logger: logger}

	events := fsm.Events{
		{Name: eventEnumerate, Src: []string{stateStart}, Dst: stateEnumerating},
		{Name: eventProcess, Src: []string{stateEnumerating}, Dst: stateProcessing},
		{Name: eventSummarize, Src: []string{stateProcessing}, Dst: stateSummarizing},
		{Name: eventComplete, Src: []string{stateSummarizing}, Dst: stateCompleted},
		{Name: eventFail, Src: []string{stateStart, stateEnumerating, stateProcessing, stateSummarizing}, Dst: stateFailed},
	}

	callbacks := fsm.Callbacks{
		"enter_state": func(_ context.Context, e *fsm.Event) {
			m.logger.Debug("[Dispatcher] State transition",
				slog.String("from", e.Src),
				slog.String("to", e.Dst),
			)
		},
		"enter_" + stateFailed: func(_ context.Context, e *fsm.Event) {
			if len(e.Args) > 0 {
				if err, ok := e.Args[0].(error); ok {
					m.reason = err
				}
			}
		},
	}

	m.FSM = fsm.NewFSM(stateStart, events, callbacks)

	return m
}

// advance fires an event. Transitions that are not allowed are programming errors.
// A cancelled run still walks through its remaining phases, so cancellation is not passed on.
func (m *dispatchMachine) advance(ctx context.Context, event string, args ...any) error {
	err := m.Event(context.WithoutCancel(ctx), event, args...)
	if isFsmRealError(err) {
		return errors.Wrapf(err, "dispatch state machine rejected %q in state %q", event, m.Current())
	}

	return nil
}

// fail moves the machine to the failed state. The reason is recorded by the
// enter_failed callback, or directly when the transition itself is rejected.
func (m *dispatchMachine) fail(ctx context.Context, reason error) {
	if err := m.advance(ctx, eventFail, reason); err != nil {
		m.logger.Error("[Dispatcher] Failed to enter failed state", slog.Any("error", err))
		m.reason = reason
	}
}

// Reason returns the error that failed the run, nil for a run that completed
func (m *dispatchMachine) Reason() error {
	return m.reason
}

func isFsmRealError(err error) bool {
	if err == nil {
		return false
	}

	var noTransition fsm.NoTransitionError
	var canceled fsm.CanceledError

	if errors.As(err, &noTransition) || errors.As(err, &canceled) {
		return false
	}

	return true
}
