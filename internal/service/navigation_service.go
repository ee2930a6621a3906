package service

import "sync"

// View is which of the three portal views is currently presented.
type View int

const (
	ViewList View = iota
	ViewUpload
	ViewAssistant
)

func (v View) String() string {
	switch v {
	case ViewUpload:
		return "upload"
	case ViewAssistant:
		return "assistant"
	default:
		return "list"
	}
}

type INavigationService interface {
	// Select is a pure state change; any data side effects are driven by
	// events, never by navigation itself.
	Select(view View)
	Active() View
	// Reset returns to the default List view, used whenever a session becomes
	// active.
	Reset()
}

type navigationService struct {
	mu     sync.Mutex
	active View
}

func NewNavigationService() INavigationService {
	return &navigationService{active: ViewList}
}

func (s *navigationService) Select(view View) {
	s.mu.Lock()
	s.active = view
	s.mu.Unlock()
}

func (s *navigationService) Active() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *navigationService) Reset() {
	s.Select(ViewList)
}
