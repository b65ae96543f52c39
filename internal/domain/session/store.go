// internal/domain/session/store.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tableside/internal/pkg/api"
)

// State describes where the store is in the table binding lifecycle
type State string

const (
	// StateIdle means no table is bound yet
	StateIdle State = "idle"
	// StateBound means a table is known but no session id is held
	StateBound State = "bound"
	// StateRecovering means a recovery call is in flight
	StateRecovering State = "recovering"
	// StateActive means a session id is bound to the table
	StateActive State = "active"
)

// API is the slice of the backend the session store needs. Fetching the menu
// for a table binds (or re-binds) a session to it.
type API interface {
	GetMenu(ctx context.Context, tableID string) (*api.MenuResponse, error)
}

// Store binds the client to a physical table and a backend-issued session id,
// recovering the latter on demand. Downstream components read its state but
// never mutate it directly.
type Store struct {
	mu       sync.Mutex
	backend  API
	logger   *logrus.Logger
	cooldown time.Duration
	now      func() time.Time

	tableID     string
	sessionID   string
	recovering  bool
	lastAttempt map[string]time.Time
}

// NewStore creates a session store. The recovery cooldown debounces repeated
// recovery attempts per table.
func NewStore(backend API, cooldown time.Duration, logger *logrus.Logger) *Store {
	return &Store{
		backend:     backend,
		logger:      logger,
		cooldown:    cooldown,
		now:         time.Now,
		lastAttempt: make(map[string]time.Time),
	}
}

// SetTableID binds the store to a table without touching the session id
func (s *Store) SetTableID(tableID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tableID = tableID
}

// SetSessionID records a session id obtained out of band (e.g. a menu load
// performed by the menu service)
func (s *Store) SetSessionID(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = sessionID
}

// TableID returns the bound table id, if any
func (s *Store) TableID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableID, s.tableID != ""
}

// SessionID returns the bound session id, if any
func (s *Store) SessionID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID, s.sessionID != ""
}

// IsRecovering reports whether a recovery call is in flight
func (s *Store) IsRecovering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovering
}

// CurrentState returns the position in the binding lifecycle
func (s *Store) CurrentState() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.recovering:
		return StateRecovering
	case s.tableID == "":
		return StateIdle
	case s.sessionID == "":
		return StateBound
	default:
		return StateActive
	}
}

// RecoverSession re-fetches a session id for a table. A second call for the
// same table within the cooldown window returns immediately without a network
// call or state change; a failed attempt resets the window so an immediate
// retry is permitted. Success keeps the attempt timestamp.
//
// When tableID is empty the currently bound table is used.
func (s *Store) RecoverSession(ctx context.Context, tableID string) error {
	s.mu.Lock()

	if tableID == "" {
		tableID = s.tableID
	}
	if tableID == "" {
		s.mu.Unlock()
		return fmt.Errorf("no table id to recover a session for")
	}

	if last, ok := s.lastAttempt[tableID]; ok && s.now().Sub(last) < s.cooldown {
		s.mu.Unlock()
		s.logger.WithField("table_id", tableID).
			Debug("Recovery attempt debounced")
		return nil
	}

	s.lastAttempt[tableID] = s.now()
	s.tableID = tableID
	s.recovering = true
	s.mu.Unlock()

	menu, err := s.backend.GetMenu(ctx, tableID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recovering = false

	// The owning view was torn down mid-flight: ignore the result entirely.
	if ctx.Err() != nil {
		delete(s.lastAttempt, tableID)
		return ctx.Err()
	}

	if err != nil {
		delete(s.lastAttempt, tableID)
		s.logger.WithError(err).WithField("table_id", tableID).
			Warn("Session recovery failed")
		return fmt.Errorf("session recovery failed: %w", err)
	}

	if menu.SessionID == "" {
		delete(s.lastAttempt, tableID)
		s.logger.WithField("table_id", tableID).
			Warn("Session recovery response missing session id")
		return api.ErrMissingSessionID
	}

	s.sessionID = menu.SessionID
	s.logger.WithFields(logrus.Fields{
		"table_id":   tableID,
		"session_id": menu.SessionID,
	}).Info("Session recovered")

	return nil
}

// EnsureSession triggers an automatic recovery when a table is bound but no
// session id is present. Safe to call on every view activation.
func (s *Store) EnsureSession(ctx context.Context) error {
	s.mu.Lock()
	tableID := s.tableID
	needed := tableID != "" && s.sessionID == "" && !s.recovering
	s.mu.Unlock()

	if !needed {
		return nil
	}
	return s.RecoverSession(ctx, tableID)
}

// TableIDFromPath derives the table id from a navigation path such as
// /mesa/<tableId> or /mesa/<tableId>/pedido
func TableIDFromPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] != "mesa" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
