package service

import (
	"context"
	"errors"
	"sync"

	"advocate-portal-client/internal/entity"
	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/internal/mapper"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/repository/contract"
)

// ErrNoActiveSession is returned when a document operation is attempted
// without a live credential.
var ErrNoActiveSession = errors.New("no active session")

type IDocumentService interface {
	// Refresh fetches the document collection. Concurrent calls collapse onto
	// a single request and observe the same outcome.
	Refresh(ctx context.Context) error
	Documents() []entity.Document
	// LastError returns the fetch error recorded for display, nil after the
	// last refresh succeeded.
	LastError() error
	Refreshing() bool
	// HandleSessionRevoked drops cached documents belonging to the revoked
	// identity.
	HandleSessionRevoked()
}

type refreshFlight struct {
	done chan struct{}
	err  error
}

type documentService struct {
	gateway gateway.IPortalClient
	session ISessionService
	cache   contract.DocumentCache
	mapper  *mapper.DocumentMapper
	log     logger.ILogger

	mu      sync.Mutex
	flight  *refreshFlight
	lastErr error
}

func NewDocumentService(
	gw gateway.IPortalClient,
	session ISessionService,
	cache contract.DocumentCache,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		gateway: gw,
		session: session,
		cache:   cache,
		mapper:  mapper.NewDocumentMapper(),
		log:     log,
	}
}

func (s *documentService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if f := s.flight; f != nil {
		s.mu.Unlock()
		<-f.done
		return f.err
	}
	f := &refreshFlight{done: make(chan struct{})}
	s.flight = f
	s.mu.Unlock()

	err := s.fetch(ctx)

	s.mu.Lock()
	s.flight = nil
	s.mu.Unlock()

	f.err = err
	close(f.done)
	return err
}

func (s *documentService) fetch(ctx context.Context) error {
	cred, ok := s.session.Credential()
	if !ok {
		return ErrNoActiveSession
	}

	responses, err := s.gateway.ListDocuments(ctx, cred.Token)

	switch {
	case err == nil:
		s.cache.Replace(s.mapper.ToEntities(responses))
		s.setLastErr(nil)
		s.log.Info("documents", "collection refreshed", map[string]interface{}{"count": len(responses)})
		return nil

	case errors.Is(err, gateway.ErrUnauthorized):
		// Fetched data (if any) belongs to a revoked identity and must never
		// be shown. The gateway hook already tears the session down; this
		// propagation keeps the repository correct even behind a fake gateway.
		s.cache.Purge()
		s.setLastErr(nil)
		s.session.ObserveUnauthorized()
		return err

	default:
		// Stale-but-valid: the previous collection stays visible alongside
		// the recorded error.
		s.setLastErr(err)
		s.log.Warn("documents", "refresh failed", map[string]interface{}{"error": err.Error()})
		return err
	}
}

func (s *documentService) setLastErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *documentService) Documents() []entity.Document {
	docs, _ := s.cache.All()
	return docs
}

func (s *documentService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *documentService) Refreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flight != nil
}

func (s *documentService) HandleSessionRevoked() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	s.cache.Purge()
}
