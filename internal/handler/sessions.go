package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/application"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/viewmodel"
)

// ErrSessionNotFound is returned for unknown or evicted session ids.
var ErrSessionNotFound = errors.New("form session not found")

// Session is one open registration form.
type Session struct {
	ID        string
	Form      *application.FormSession
	Recent    *application.RecentPets
	View      *viewmodel.FormView
	CreatedAt time.Time
}

// SessionRegistry keeps the open sessions, evicting the least recently used
// one once capacity is reached.
type SessionRegistry struct {
	sessions  *lru.Cache[string, *Session]
	gateway   mascota.Gateway
	publisher application.EventPublisher
	logger    *zap.Logger
}

// NewSessionRegistry creates a registry holding at most capacity sessions.
func NewSessionRegistry(
	capacity int,
	gateway mascota.Gateway,
	publisher application.EventPublisher,
	logger *zap.Logger,
) (*SessionRegistry, error) {
	r := &SessionRegistry{gateway: gateway, publisher: publisher, logger: logger}
	cache, err := lru.NewWithEvict[string, *Session](capacity, func(id string, _ *Session) {
		r.logger.Debug("form session evicted", zap.String("session_id", id))
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	r.sessions = cache
	return r, nil
}

// Open creates a session and loads its recent records panel.
func (r *SessionRegistry) Open(ctx context.Context) *Session {
	view := viewmodel.New()
	id := uuid.New().String()
	log := r.logger.With(zap.String("session_id", id))

	var publisher application.EventPublisher
	if r.publisher != nil {
		publisher = originPublisher{next: r.publisher, sessionID: id}
	}

	recent := application.NewRecentPets(r.gateway, view, log)
	s := &Session{
		ID:        id,
		Recent:    recent,
		Form:      application.NewFormSession(r.gateway, view.Ports(), recent, publisher, log),
		View:      view,
		CreatedAt: time.Now().UTC(),
	}
	r.sessions.Add(id, s)

	// A failed load is rendered in the panel; the session is still usable.
	_ = recent.Refresh(ctx)
	return s
}

// Get returns the session with the given id.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	s, ok := r.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close forgets the session with the given id.
func (r *SessionRegistry) Close(id string) error {
	if !r.sessions.Remove(id) {
		return ErrSessionNotFound
	}
	return nil
}

// Len returns the number of open sessions.
func (r *SessionRegistry) Len() int {
	return r.sessions.Len()
}

// RefreshAll reloads the recent panel of every open session except exceptID,
// which may be empty.
func (r *SessionRegistry) RefreshAll(ctx context.Context, exceptID string) {
	for _, s := range r.sessions.Values() {
		if ctx.Err() != nil {
			return
		}
		if s.ID == exceptID {
			continue
		}
		_ = s.Recent.Refresh(ctx)
	}
}

// originPublisher stamps events with the session that saved the record.
type originPublisher struct {
	next      application.EventPublisher
	sessionID string
}

// PublishIntake tags evt with the session id and forwards it.
func (p originPublisher) PublishIntake(ctx context.Context, evt mascota.IntakeEvent) error {
	evt.OriginSession = p.sessionID
	return p.next.PublishIntake(ctx, evt)
}
