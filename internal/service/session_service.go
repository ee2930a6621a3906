package service

import (
	"context"
	"sync"

	"advocate-portal-client/internal/entity"
	"advocate-portal-client/internal/gateway"
	"advocate-portal-client/internal/pkg/logger"
	"advocate-portal-client/internal/repository/contract"
	"advocate-portal-client/pkg/events"
	"advocate-portal-client/pkg/pending"

	"github.com/ThreeDotsLabs/watermill/message"
)

type ISessionService interface {
	// Bootstrap restores a persisted credential without contacting the server.
	// An expired token is only discovered on the first authenticated request;
	// that staleness window is accepted.
	Bootstrap()
	SignIn(ctx context.Context, email, password string) error
	SignOut()
	// ObserveUnauthorized reacts to a 401 seen anywhere in the client. Same
	// effect as SignOut.
	ObserveUnauthorized()
	Credential() (entity.Credential, bool)
	Active() bool
}

type sessionService struct {
	gateway         gateway.IPortalClient
	tokens          contract.TokenRepository
	publisher       message.Publisher
	defaultIdentity string
	log             logger.ILogger

	mu         sync.Mutex
	credential *entity.Credential
	signInOp   pending.Operation
}

func NewSessionService(
	gw gateway.IPortalClient,
	tokens contract.TokenRepository,
	publisher message.Publisher,
	defaultIdentity string,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		gateway:         gw,
		tokens:          tokens,
		publisher:       publisher,
		defaultIdentity: defaultIdentity,
		log:             log,
	}
}

func (s *sessionService) Bootstrap() {
	token, err := s.tokens.Load()
	if err != nil {
		s.log.Warn("session", "failed to read token store", map[string]interface{}{"error": err.Error()})
		return
	}
	if token == "" {
		return
	}

	// The store only mirrors the token, not the identity it was issued for,
	// so a restored session starts with the configured account placeholder.
	s.mu.Lock()
	s.credential = &entity.Credential{Token: token, Identity: s.defaultIdentity}
	identity := s.credential.Identity
	s.mu.Unlock()

	s.log.Info("session", "session restored from token store", map[string]interface{}{"identity": identity})
	s.publish(events.NewSessionEstablished(identity))
}

func (s *sessionService) SignIn(ctx context.Context, email, password string) error {
	if err := s.signInOp.TryBegin(); err != nil {
		return err
	}

	token, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.signInOp.Settle(err)
		return err
	}

	s.mu.Lock()
	s.credential = &entity.Credential{Token: token, Identity: email}
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		// The session stays active; only the durable mirror is behind.
		s.log.Warn("session", "failed to persist token", map[string]interface{}{"error": err.Error()})
	}

	s.log.Info("session", "signed in", map[string]interface{}{"identity": email})
	s.publish(events.NewSessionEstablished(email))
	s.signInOp.Settle(nil)
	return nil
}

func (s *sessionService) SignOut() {
	s.clear("sign_out")
}

func (s *sessionService) ObserveUnauthorized() {
	s.clear("unauthorized")
}

// clear drops the credential from memory and the durable store. Idempotent and
// free of network side effects; the revocation event only fires on an actual
// active -> inactive transition.
func (s *sessionService) clear(reason string) {
	s.mu.Lock()
	wasActive := s.credential != nil
	s.credential = nil
	s.mu.Unlock()

	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("session", "failed to clear token store", map[string]interface{}{"error": err.Error()})
	}

	if wasActive {
		s.log.Info("session", "session cleared", map[string]interface{}{"reason": reason})
		s.publish(events.NewSessionRevoked(reason))
	}
}

func (s *sessionService) Credential() (entity.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential == nil {
		return entity.Credential{}, false
	}
	return *s.credential, true
}

func (s *sessionService) Active() bool {
	_, ok := s.Credential()
	return ok
}

func (s *sessionService) publish(e events.BaseEvent) {
	msg, err := events.Encode(e)
	if err != nil {
		s.log.Error("session", "failed to encode event", map[string]interface{}{"type": e.EventType(), "error": err.Error()})
		return
	}
	if err := s.publisher.Publish(e.EventType(), msg); err != nil {
		s.log.Error("session", "failed to publish event", map[string]interface{}{"type": e.EventType(), "error": err.Error()})
	}
}
