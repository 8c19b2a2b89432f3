package intake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicops/backoffice/internal/backend"
	"github.com/clinicops/backoffice/internal/observability/metrics"
	"github.com/clinicops/backoffice/pkg/logging"
)

// Backend is the subset of the clinic API the wizard needs.
type Backend interface {
	ListLocations(ctx context.Context) ([]backend.Location, error)
	LookupPatient(ctx context.Context, nationalID string) (*backend.Patient, error)
	SubmitWalkIn(ctx context.Context, req backend.WalkInRequest) (*backend.WalkInTicket, error)
}

// Service drives the walk-in intake wizard:
// searching -> confirming -> queueing -> done, with backward transitions
// confirming -> searching and queueing -> confirming. A session is discarded
// on a successful queue submission.
type Service struct {
	store   SessionStore
	api     Backend
	logger  *logging.Logger
	metrics *metrics.IntakeMetrics

	// Operations on one session are strictly sequential; the per-session
	// lock is the server-side equivalent of the UI disabling its submit
	// control while a call is in flight.
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewService creates a wizard service.
func NewService(store SessionStore, api Backend, logger *logging.Logger, m *metrics.IntakeMetrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		api:     api,
		logger:  logger,
		metrics: m,
		locks:   make(map[string]*sync.Mutex),
	}
}

// QueueResult is returned to the caller when a submission succeeds.
type QueueResult struct {
	Ticket  *backend.WalkInTicket `json:"ticket"`
	Message string                `json:"message"`
}

// StartSession opens a new intake session at the searching step. The chosen
// location defaults to the first location the backend returns; the user can
// override it at the queueing step.
func (s *Service) StartSession(ctx context.Context) (*Session, error) {
	locations, err := s.api.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("intake: load locations: %w", err)
	}

	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.NewString(),
		Step:      StepSearching,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(locations) > 0 {
		session.LocationID = locations[0].ID
	}
	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("intake session started", "session_id", session.ID)
	return session, nil
}

// Search looks up the national ID and advances to the confirming step. The
// ID is validated locally first: a malformed value is rejected with a field
// error before any network call. A lookup miss is a normal branch that
// switches the session into new-registration mode; only transport and server
// failures keep the session at the searching step.
func (s *Service) Search(ctx context.Context, sessionID, idCard string) (*Session, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != StepSearching {
		return session, fmt.Errorf("%w: search from %s", ErrInvalidTransition, session.Step)
	}

	if verr := validateNationalID(idCard); verr != nil {
		s.metrics.ObserveTransition(string(StepSearching), "validation_error")
		return session, verr
	}

	patient, err := s.api.LookupPatient(ctx, idCard)
	switch {
	case err == nil:
		session.MatchedPatient = patient
		session.Draft = DraftPatient{
			IDCard:      patient.IDCard,
			FullName:    patient.FullName,
			DateOfBirth: patient.DateOfBirth,
			Phone:       patient.Phone,
			Gender:      patient.Gender,
			Email:       patient.Email,
		}
		s.metrics.ObserveTransition(string(StepSearching), "found")
	case errors.Is(err, backend.ErrNotFound):
		session.MatchedPatient = nil
		session.Draft = DraftPatient{IDCard: idCard}
		s.metrics.ObserveTransition(string(StepSearching), "not_found")
	default:
		// Transport or server failure: stay at searching, surface the error.
		s.metrics.ObserveTransition(string(StepSearching), "error")
		return session, err
	}

	session.LookupKey = idCard
	session.Step = StepConfirming
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm advances from confirming to queueing. On the new-registration path
// the submitted draft is merged and validated field by field; the searched
// national ID stays fixed. On the matched path the fields are display-only
// and the transition is unconditional.
func (s *Service) Confirm(ctx context.Context, sessionID string, draft DraftPatient) (*Session, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != StepConfirming {
		return session, fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, session.Step)
	}

	if session.NewRegistration() {
		draft.IDCard = session.Draft.IDCard
		if verr := validateDraft(draft); verr != nil {
			s.metrics.ObserveTransition(string(StepConfirming), "validation_error")
			return session, verr
		}
		session.Draft = draft
	}

	session.Step = StepQueueing
	session.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.ObserveTransition(string(StepConfirming), "ok")
	return session, nil
}

// Back moves one step backward. Leaving the confirming step clears the
// lookup result and draft so the next search starts clean.
func (s *Service) Back(ctx context.Context, sessionID string) (*Session, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case StepConfirming:
		session.Step = StepSearching
		session.LookupKey = ""
		session.MatchedPatient = nil
		session.Draft = DraftPatient{}
	case StepQueueing:
		session.Step = StepConfirming
	default:
		return session, fmt.Errorf("%w: back from %s", ErrInvalidTransition, session.Step)
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Queue submits the walk-in to the backend. locationID overrides the
// defaulted choice when non-empty. Success discards the session; failure
// leaves it at the queueing step so the user can correct and resubmit.
// Nothing is retried automatically.
func (s *Service) Queue(ctx context.Context, sessionID, locationID string) (*QueueResult, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != StepQueueing {
		return nil, fmt.Errorf("%w: queue from %s", ErrInvalidTransition, session.Step)
	}

	if locationID != "" {
		session.LocationID = locationID
	}
	if session.LocationID == "" {
		s.metrics.ObserveTransition(string(StepQueueing), "validation_error")
		return nil, fieldError("location_id", "a location is required")
	}

	req := backend.WalkInRequest{LocationID: session.LocationID}
	if session.NewRegistration() {
		draft := session.Draft
		req.Patient = &backend.NewPatient{
			IDCard:      draft.IDCard,
			FullName:    draft.FullName,
			DateOfBirth: draft.DateOfBirth,
			Phone:       draft.Phone,
			Gender:      draft.Gender,
			Email:       draft.Email,
		}
	} else {
		req.PatientID = session.MatchedPatient.ID
	}

	ticket, err := s.api.SubmitWalkIn(ctx, req)
	if err != nil {
		// Keep the populated session so nothing the user typed is lost.
		session.UpdatedAt = time.Now().UTC()
		if putErr := s.store.Put(ctx, session); putErr != nil {
			s.logger.Warn("intake: persist session after failed submit", "error", putErr)
		}
		s.metrics.ObserveTransition(string(StepQueueing), "error")
		return nil, err
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("intake: discard completed session", "session_id", sessionID, "error", err)
	}
	s.forgetLock(sessionID)
	s.metrics.ObserveTransition(string(StepQueueing), "ok")
	s.metrics.ObserveQueued(session.NewRegistration())
	s.logger.Info("walk-in queued",
		"session_id", sessionID,
		"location_id", session.LocationID,
		"queue_number", ticket.QueueNumber,
	)

	message := ticket.Message
	if message == "" {
		message = fmt.Sprintf("Queued at position %d.", ticket.QueueNumber)
	}
	return &QueueResult{Ticket: ticket, Message: message}, nil
}

// Get returns the current session state.
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *Service) lock(sessionID string) func() {
	s.lockMu.Lock()
	mu, ok := s.locks[sessionID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[sessionID] = mu
	}
	s.lockMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// forgetLock drops the per-session lock entry once the session itself is
// gone, so the map does not grow with discarded and expired sessions.
func (s *Service) forgetLock(sessionID string) {
	s.lockMu.Lock()
	delete(s.locks, sessionID)
	s.lockMu.Unlock()
}

// loadSession fetches the session under the caller's lock, cleaning up the
// lock entry when the session no longer exists.
func (s *Service) loadSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			s.forgetLock(sessionID)
		}
		return nil, err
	}
	return session, nil
}
