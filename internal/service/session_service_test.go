package service

import (
	"context"
	"testing"
	"time"

	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/pkg/pending"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInStoresAndPersistsCredential(t *testing.T) {
	fx := newSessionFixture(t, &fakeGateway{loginToken: "abc"})

	require.NoError(t, fx.session.SignIn(context.Background(), "client@test.com", "password"))

	cred, ok := fx.session.Credential()
	require.True(t, ok)
	assert.Equal(t, "abc", cred.Token)
	assert.Equal(t, "client@test.com", cred.Identity)

	stored, err := fx.tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", stored)
}

func TestBootstrapRestoresPersistedSession(t *testing.T) {
	fx := newSessionFixture(t, &fakeGateway{loginToken: "abc"})
	require.NoError(t, fx.session.SignIn(context.Background(), "client@test.com", "password"))

	// Simulated reload: a fresh service over the same store picks the
	// credential back up without any network call.
	restored := fx.restore()
	restored.Bootstrap()

	cred, ok := restored.Credential()
	require.True(t, ok)
	assert.Equal(t, "abc", cred.Token)
	assert.Equal(t, "client@test.com", cred.Identity)
}

func TestBootstrapWithEmptyStoreStaysInactive(t *testing.T) {
	fx := newSessionFixture(t, &fakeGateway{})

	fx.session.Bootstrap()

	assert.False(t, fx.session.Active())
}

func TestSignInFailureLeavesSessionInactive(t *testing.T) {
	fx := newSessionFixture(t, &fakeGateway{
		loginErr: &gateway.RequestError{Status: 401, Message: "Incorrect email or password"},
	})

	err := fx.session.SignIn(context.Background(), "client@test.com", "wrong")
	require.Error(t, err)

	assert.False(t, fx.session.Active())
	stored, loadErr := fx.tokens.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, stored)
}

func TestSignOutIsIdempotent(t *testing.T) {
	fx := newSessionFixture(t, &fakeGateway{loginToken: "abc"})
	require.NoError(t, fx.session.SignIn(context.Background(), "client@test.com", "password"))

	fx.session.SignOut()
	fx.session.SignOut()

	assert.False(t, fx.session.Active())
	stored, err := fx.tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)

	// Signing out with no prior session must also leave the store clean.
	fresh := newSessionFixture(t, &fakeGateway{})
	fresh.session.SignOut()
	stored, err = fresh.tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestObserveUnauthorizedClearsCredential(t *testing.T) {
	fx := newSessionFixture(t, &fakeGateway{loginToken: "abc"})
	require.NoError(t, fx.session.SignIn(context.Background(), "client@test.com", "password"))

	fx.session.ObserveUnauthorized()

	assert.False(t, fx.session.Active())
	stored, err := fx.tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestReentrantSignInIsRejected(t *testing.T) {
	gw := &fakeGateway{
		loginToken:   "abc",
		loginGate:    make(chan struct{}),
		loginEntered: make(chan struct{}),
	}
	fx := newSessionFixture(t, gw)

	entered := gw.loginEntered
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- fx.session.SignIn(context.Background(), "client@test.com", "password")
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first sign-in never reached the gateway")
	}

	err := fx.session.SignIn(context.Background(), "client@test.com", "password")
	assert.ErrorIs(t, err, pending.ErrInFlight)

	close(gw.loginGate)
	require.NoError(t, <-firstDone)
	assert.True(t, fx.session.Active())
}
