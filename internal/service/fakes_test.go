package service

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"advocate-portal-client/internal/dto"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/repository/implementation"
	"advocate-portal-client/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// fakeGateway scripts the portal responses and counts calls. Gates, when set,
// block the call until closed so tests can hold an operation in flight.
type fakeGateway struct {
	mu sync.Mutex

	loginToken   string
	loginErr     error
	loginGate    chan struct{}
	loginEntered chan struct{}

	listDocs  []dto.DocumentResponse
	listErr   error
	listGate  chan struct{}
	listCalls int

	uploadName  string
	uploadErr   error
	uploadCalls int

	askAnswer string
	askErr    error
	askCalls  int
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, error) {
	if f.loginEntered != nil {
		close(f.loginEntered)
		f.loginEntered = nil
	}
	if f.loginGate != nil {
		<-f.loginGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return "", f.loginErr
	}
	return f.loginToken, nil
}

func (f *fakeGateway) ListDocuments(ctx context.Context, token string) ([]dto.DocumentResponse, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listDocs, nil
}

func (f *fakeGateway) UploadDocument(ctx context.Context, token, filename string, file io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	if f.uploadName != "" {
		return f.uploadName, nil
	}
	return filename, nil
}

func (f *fakeGateway) AskAssistant(ctx context.Context, query string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.askCalls++
	if f.askErr != nil {
		return "", f.askErr
	}
	return f.askAnswer, nil
}

func (f *fakeGateway) listCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type sessionFixture struct {
	gateway  *fakeGateway
	tokens   *implementation.FileTokenRepository
	cache    *memory.DocumentCache
	session  ISessionService
	document IDocumentService
}

func newSessionFixture(t *testing.T, gw *fakeGateway) *sessionFixture {
	t.Helper()

	tokens := implementation.NewFileTokenRepository(filepath.Join(t.TempDir(), "token"))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	log := logger.NewNopLogger()
	cache := memory.NewDocumentCache()
	session := NewSessionService(gw, tokens, pubSub, "client@test.com", log)
	document := NewDocumentService(gw, session, cache, log)

	return &sessionFixture{
		gateway:  gw,
		tokens:   tokens,
		cache:    cache,
		session:  session,
		document: document,
	}
}

// restore builds a second session service over the same token store,
// simulating a process restart.
func (fx *sessionFixture) restore() ISessionService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return NewSessionService(fx.gateway, fx.tokens, pubSub, "client@test.com", logger.NewNopLogger())
}
