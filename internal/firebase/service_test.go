package firebase

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}

func TestVerifyIDToken(t *testing.T) {
	ctx := context.Background()
	verifier := new(mockVerifier)
	svc := newWithClient(verifier, zap.NewNop())

	_, err := svc.VerifyIDToken(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyToken)

	verifier.On("VerifyIDToken", ctx, "good").Return(&auth.Token{UID: "u1"}, nil).Once()
	token, err := svc.VerifyIDToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", token.UID)

	expired := errors.New("token expired")
	verifier.On("VerifyIDToken", ctx, "old").Return(nil, expired).Once()
	_, err = svc.VerifyIDToken(ctx, "old")
	assert.ErrorIs(t, err, expired)

	verifier.AssertExpectations(t)
}
