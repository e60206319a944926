package sendstate

import (
	"context"
	"errors"
	"testing"

	"github.com/go-authflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func TestRun_SuccessMovesToSent(t *testing.T) {
	var seen []domain.SendPhase
	m := New(func(s domain.SendState) { seen = append(seen, s.Phase) })

	st, err := m.Run(context.Background(), "a@b.com", ok, Narrative{Success: "sent!", Rejected: "failed"})
	require.NoError(t, err)
	assert.Equal(t, domain.SendSent, st.Phase)
	assert.Equal(t, "sent!", st.Message)
	assert.Equal(t, []domain.SendPhase{domain.SendSending, domain.SendSent}, seen)
}

func TestRun_FailureUsesBackendMessageOrFallback(t *testing.T) {
	m := New(nil)
	st, err := m.Run(context.Background(), "a@b.com", func(context.Context) error {
		return &domain.Error{Kind: domain.ErrDomain, Status: 429, Message: "slow down"}
	}, Narrative{Rejected: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, domain.SendFailed, st.Phase)
	assert.Equal(t, "slow down", st.Error)

	st, err = m.Run(context.Background(), "a@b.com", func(context.Context) error {
		return errors.New("boom")
	}, Narrative{Rejected: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", st.Error)

	st, err = m.Run(context.Background(), "a@b.com", func(context.Context) error {
		return &domain.Error{Kind: domain.ErrTransport}
	}, Narrative{Rejected: "fallback", Unreachable: "offline"})
	require.NoError(t, err)
	assert.Equal(t, "offline", st.Error)
}

func TestRun_RejectedWhileSending(t *testing.T) {
	m := New(nil)
	calls := 0
	release := make(chan struct{})
	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.Run(context.Background(), "a@b.com", func(context.Context) error {
			calls++
			close(started)
			<-release
			return nil
		}, Narrative{})
	}()
	<-started

	_, err := m.Run(context.Background(), "a@b.com", func(context.Context) error {
		t.Fatal("second send must not run")
		return nil
	}, Narrative{})
	assert.ErrorIs(t, err, domain.ErrBusy)

	close(release)
	<-done
	assert.Equal(t, 1, calls)
}

func TestRun_FromSentNeedsReset(t *testing.T) {
	m := New(nil)
	_, err := m.Run(context.Background(), "a@b.com", ok, Narrative{})
	require.NoError(t, err)

	_, err = m.Run(context.Background(), "a@b.com", ok, Narrative{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, m.Reset())
	assert.Equal(t, domain.SendIdle, m.Snapshot().Phase)
	assert.ErrorIs(t, m.Reset(), domain.ErrInvalidTransition)
}

func TestRun_FailedAllowsRetry(t *testing.T) {
	m := New(nil)
	_, _ = m.Run(context.Background(), "a@b.com", func(context.Context) error { return errors.New("x") }, Narrative{Rejected: "f"})
	require.Equal(t, domain.SendFailed, m.Snapshot().Phase)

	st, err := m.Run(context.Background(), "a@b.com", ok, Narrative{Success: "ok", Rejected: "f"})
	require.NoError(t, err)
	assert.Equal(t, domain.SendSent, st.Phase)
	assert.Empty(t, st.Error)
}
