// Package sendstate is the idle/sending/sent/failed machine shared by every
// form that asks the backend to send an email.
package sendstate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-authflow/internal/domain"
)

// Narrative is the text a form shows after a send settles.
type Narrative struct {
	Success     string
	Rejected    string // backend answered non-2xx without a message
	Unreachable string // backend could not be reached
}

func (n Narrative) failure(err error) string {
	if errors.Is(err, domain.ErrTransport) {
		return n.Unreachable
	}
	return domain.MessageOf(err, n.Rejected)
}

// Machine guards one form. The zero value is not usable; call New.
type Machine struct {
	mu       sync.Mutex
	state    domain.SendState
	onChange func(domain.SendState)
}

// New returns a machine in the idle phase. onChange may be nil.
func New(onChange func(domain.SendState)) *Machine {
	return &Machine{state: domain.SendState{Phase: domain.SendIdle}, onChange: onChange}
}

func (m *Machine) Snapshot() domain.SendState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Run moves idle/failed to sending, calls send outside the lock and then
// settles in sent or failed. A second Run while sending is rejected with
// domain.ErrBusy; a Run from sent needs Reset first.
//
// send failures become state, not a returned error: the returned error is
// only set when the submission was rejected before any call was made.
func (m *Machine) Run(ctx context.Context, email string, send func(context.Context) error, text Narrative) (domain.SendState, error) {
	if err := m.begin(email); err != nil {
		return m.Snapshot(), err
	}
	err := send(ctx)

	m.mu.Lock()
	next := domain.SendState{Phase: domain.SendSent, Email: email, Message: text.Success}
	if err != nil {
		next = domain.SendState{Phase: domain.SendFailed, Email: email, Error: text.failure(err)}
	}
	m.state = next
	m.mu.Unlock()
	m.publish(next)
	return next, nil
}

func (m *Machine) begin(email string) error {
	m.mu.Lock()
	switch m.state.Phase {
	case domain.SendSending:
		m.mu.Unlock()
		return domain.ErrBusy
	case domain.SendSent:
		m.mu.Unlock()
		return fmt.Errorf("send from %s: %w", domain.SendSent, domain.ErrInvalidTransition)
	}
	next := domain.SendState{Phase: domain.SendSending, Email: email}
	m.state = next
	m.mu.Unlock()
	m.publish(next)
	return nil
}

// Reset is the explicit "send another" edge from sent back to idle.
func (m *Machine) Reset() error {
	m.mu.Lock()
	if m.state.Phase != domain.SendSent {
		phase := m.state.Phase
		m.mu.Unlock()
		return fmt.Errorf("reset from %s: %w", phase, domain.ErrInvalidTransition)
	}
	next := domain.SendState{Phase: domain.SendIdle}
	m.state = next
	m.mu.Unlock()
	m.publish(next)
	return nil
}

func (m *Machine) publish(s domain.SendState) {
	if m.onChange != nil {
		m.onChange(s)
	}
}
