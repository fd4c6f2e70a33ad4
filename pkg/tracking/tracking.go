// Package tracking enregistre les événements du storefront pour une session
// explicite. Pas de client global : l'appelant crée une Session et la passe
// à chaque appel de Track.
package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-metrics/pkg/models"
)

// PageViewed est suivi hors du tunnel de conversion.
const PageViewed = "page_viewed"

// ErrUnknownEvent : type d'événement non suivi.
var ErrUnknownEvent = errors.New("tracking: unknown event type")

// Session identifie le parcours d'un visiteur.
type Session struct {
	ID      string
	UserID  string
	Started time.Time
}

// NewSession démarre une session, éventuellement liée à un utilisateur connecté.
func NewSession(userID string, now time.Time) Session {
	return Session{ID: uuid.NewString(), UserID: userID, Started: now.UTC()}
}

// Sink persiste les événements.
type Sink interface {
	InsertEvent(ctx context.Context, ev models.StorefrontEvent) error
}

// Tracker valide les événements et les transmet à un Sink.
type Tracker struct {
	sink   Sink
	logger *zap.Logger
	now    func() time.Time
}

// New retourne un Tracker qui écrit dans sink.
func New(sink Sink, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{sink: sink, logger: logger, now: time.Now}
}

// Track enregistre event pour session, avec des propriétés optionnelles.
func (t *Tracker) Track(ctx context.Context, s Session, event string, props map[string]any) (models.StorefrontEvent, error) {
	if !Known(event) {
		return models.StorefrontEvent{}, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	if s.ID == "" {
		return models.StorefrontEvent{}, errors.New("tracking: session has no id")
	}

	body := []byte("{}")
	if len(props) > 0 {
		var err error
		if body, err = json.Marshal(props); err != nil {
			return models.StorefrontEvent{}, fmt.Errorf("encode properties: %w", err)
		}
	}

	ev := models.StorefrontEvent{
		ID:         uuid.NewString(),
		SessionID:  s.ID,
		UserID:     s.UserID,
		Type:       event,
		Properties: string(body),
		OccurredAt: t.now().UTC(),
	}
	if err := t.sink.InsertEvent(ctx, ev); err != nil {
		return models.StorefrontEvent{}, err
	}
	t.logger.Debug("event tracked",
		zap.String("event", event),
		zap.String("session_id", s.ID),
		zap.String("user_id", s.UserID))
	return ev, nil
}

// Known indique si event est une étape du tunnel ou une page vue.
func Known(event string) bool {
	if event == PageViewed {
		return true
	}
	for _, step := range models.FunnelOrder {
		if step == event {
			return true
		}
	}
	return false
}

// LogSink écrit les événements dans un logger plutôt qu'en base.
type LogSink struct {
	Logger *zap.Logger
}

// InsertEvent implémente Sink.
func (l LogSink) InsertEvent(_ context.Context, ev models.StorefrontEvent) error {
	l.Logger.Info("storefront event",
		zap.String("id", ev.ID),
		zap.String("type", ev.Type),
		zap.String("session_id", ev.SessionID),
		zap.String("user_id", ev.UserID),
		zap.String("properties", ev.Properties),
		zap.Time("occurred_at", ev.OccurredAt))
	return nil
}
