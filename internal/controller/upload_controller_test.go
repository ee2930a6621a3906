package controller

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"advocate-portal-client/internal/entity"
	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadFixture(t *testing.T, gw *fakeGateway) (IUploadController, *gochannel.GoChannel) {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	session := &fakeSession{cred: &entity.Credential{Token: "abc", Identity: "client@test.com"}}
	return NewUploadController(gw, session, pubSub, logger.NewNopLogger()), pubSub
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSubmitWithoutSelectionIsLocalValidation(t *testing.T) {
	gw := &fakeGateway{}
	ctrl, _ := newUploadFixture(t, gw)

	err := ctrl.Submit(context.Background())

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please select a file first.", ctrl.Message())
	assert.Equal(t, 0, gw.uploadCalls, "validation failures must not reach the network")
}

func TestSubmitSuccessClearsSelectionAndPublishes(t *testing.T) {
	gw := &fakeGateway{}
	ctrl, pubSub := newUploadFixture(t, gw)

	messages, err := pubSub.Subscribe(context.Background(), events.TopicUploadCompleted)
	require.NoError(t, err)

	path := writeTempFile(t, "contract.pdf", "file-bytes")
	ctrl.SelectFile(path)

	require.NoError(t, ctrl.Submit(context.Background()))

	_, selected := ctrl.Selected()
	assert.False(t, selected, "selection must be cleared after a successful upload")
	assert.Contains(t, ctrl.Message(), "contract.pdf")

	select {
	case msg := <-messages:
		e, decodeErr := events.Decode(msg)
		require.NoError(t, decodeErr)
		assert.Equal(t, events.TopicUploadCompleted, e.EventType())
		assert.Equal(t, "contract.pdf", e.Payload()["filename"])
		msg.Ack()
	case <-time.After(2 * time.Second):
		t.Fatal("no upload-completed event published")
	}
}

func TestSubmitFailureRetainsSelection(t *testing.T) {
	gw := &fakeGateway{uploadErr: &gateway.RequestError{Status: 413, Message: "File too large"}}
	ctrl, _ := newUploadFixture(t, gw)

	path := writeTempFile(t, "contract.pdf", "file-bytes")
	ctrl.SelectFile(path)

	err := ctrl.Submit(context.Background())
	require.Error(t, err)

	got, selected := ctrl.Selected()
	assert.True(t, selected, "selection must survive a failed upload for re-submit")
	assert.Equal(t, path, got)
	assert.Contains(t, ctrl.Message(), "File too large")

	// Re-submit after the failure goes through.
	gw.mu.Lock()
	gw.uploadErr = nil
	gw.mu.Unlock()
	require.NoError(t, ctrl.Submit(context.Background()))
	assert.Equal(t, 2, gw.uploadCalls)
}

func TestSubmitNetworkFailureMessage(t *testing.T) {
	gw := &fakeGateway{uploadErr: &gateway.NetworkError{Err: context.DeadlineExceeded}}
	ctrl, _ := newUploadFixture(t, gw)

	ctrl.SelectFile(writeTempFile(t, "contract.pdf", "x"))
	require.Error(t, ctrl.Submit(context.Background()))
	assert.Contains(t, ctrl.Message(), "Network error during upload.")
}

func TestSubmitWithoutSessionFails(t *testing.T) {
	gw := &fakeGateway{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })
	ctrl := NewUploadController(gw, &fakeSession{}, pubSub, logger.NewNopLogger())

	ctrl.SelectFile(writeTempFile(t, "contract.pdf", "x"))
	err := ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, gw.uploadCalls)
}
