package magiclink

import (
	"context"
	"testing"

	"github.com/go-authflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRequester struct{ mock.Mock }

func (m *mockRequester) RequestMagicLink(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func TestSubmit_Success(t *testing.T) {
	r := &mockRequester{}
	r.On("RequestMagicLink", mock.Anything, "a@b.com").Return(nil).Once()

	st, err := New(r).Submit(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, domain.SendSent, st.Phase)
	assert.Equal(t, "We've sent a secure login link to a@b.com", st.Message)
	r.AssertExpectations(t)
}

func TestSubmit_InvalidEmailNeverCallsBackend(t *testing.T) {
	for _, email := range []string{"", "plainaddress"} {
		r := &mockRequester{}
		st, err := New(r).Submit(context.Background(), email)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, domain.SendIdle, st.Phase)
		r.AssertNotCalled(t, "RequestMagicLink", mock.Anything, mock.Anything)
	}
}

func TestSubmit_BackendMessageIsNotShown(t *testing.T) {
	r := &mockRequester{}
	r.On("RequestMagicLink", mock.Anything, "a@b.com").
		Return(&domain.Error{Kind: domain.ErrDomain, Status: 400, Message: "internal detail"}).Once()

	st, err := New(r).Submit(context.Background(), "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, domain.SendFailed, st.Phase)
	assert.Equal(t, msgFailed, st.Error)
}

func TestSubmit_TransportFailure(t *testing.T) {
	r := &mockRequester{}
	r.On("RequestMagicLink", mock.Anything, "a@b.com").Return(&domain.Error{Kind: domain.ErrTransport}).Once()

	st, _ := New(r).Submit(context.Background(), "a@b.com")

	assert.Equal(t, msgFailed, st.Error)
}

func TestSubmit_SentFormIsOneShot(t *testing.T) {
	r := &mockRequester{}
	r.On("RequestMagicLink", mock.Anything, "a@b.com").Return(nil).Once()
	f := New(r)

	_, err := f.Submit(context.Background(), "a@b.com")
	require.NoError(t, err)
	st, err := f.Submit(context.Background(), "a@b.com")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.SendSent, st.Phase)
	r.AssertNumberOfCalls(t, "RequestMagicLink", 1)
}
