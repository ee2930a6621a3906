package controller

import (
	"context"
	"io"
	"sync"

	"advocate-portal-client/internal/dto"
	"advocate-portal-client/internal/entity"
)

type fakeGateway struct {
	mu sync.Mutex

	uploadName  string
	uploadErr   error
	uploadCalls int

	askAnswer string
	askErr    error
	askCalls  int
}

func (f *fakeGateway) Login(ctx context.Context, email, password string) (string, error) {
	return "", nil
}

func (f *fakeGateway) ListDocuments(ctx context.Context, token string) ([]dto.DocumentResponse, error) {
	return nil, nil
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

// fakeSession satisfies service.ISessionService with a scripted credential.
type fakeSession struct {
	mu        sync.Mutex
	cred      *entity.Credential
	signInErr error
	signIns   int
}

func (f *fakeSession) Bootstrap() {}

func (f *fakeSession) SignIn(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if f.signInErr != nil {
		return f.signInErr
	}
	f.cred = &entity.Credential{Token: "abc", Identity: email}
	return nil
}

func (f *fakeSession) SignOut() {
	f.mu.Lock()
	f.cred = nil
	f.mu.Unlock()
}

func (f *fakeSession) ObserveUnauthorized() {
	f.SignOut()
}

func (f *fakeSession) Credential() (entity.Credential, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cred == nil {
		return entity.Credential{}, false
	}
	return *f.cred, true
}

func (f *fakeSession) Active() bool {
	_, ok := f.Credential()
	return ok
}
