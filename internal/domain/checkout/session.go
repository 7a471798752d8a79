package checkout

import (
	"errors"
	"sync"
	"time"

	"unicart/internal/domain/cart"

	"github.com/google/uuid"
)

var (
	ErrAddressRequired       = errors.New("delivery address is required")
	ErrPaymentMethodRequired = errors.New("payment method is required")
	ErrSubmissionInProgress  = errors.New("order submission already in progress")
	ErrSessionClosed         = errors.New("checkout session is closed")
	ErrInvalidTransition     = errors.New("invalid checkout state transition")
)

// Session is the state of one checkout attempt for one domain cart.
//
//	idle -> validating -> submitting -> succeeded
//	            ^             |
//	            +-- failed <--+
//
// A failure is not a resting state: the session is back in validating with
// the reason kept in LastFailure until the next attempt.
type Session struct {
	mu              sync.Mutex
	id              uuid.UUID
	userID          uuid.UUID
	domain          cart.DomainType
	addressID       *uuid.UUID
	paymentMethodID *uuid.UUID
	deliveryFee     cart.Money
	status          Status
	lastFailure     string
	attempts        int
	createdAt       time.Time
}

type View struct {
	ID                      uuid.UUID
	UserID                  uuid.UUID
	DomainType              cart.DomainType
	SelectedAddressID       *uuid.UUID
	SelectedPaymentMethodID *uuid.UUID
	DeliveryFeeEstimate     cart.Money
	Status                  Status
	LastFailure             string
	Attempts                int
	CreatedAt               time.Time
}

func NewSession(userID uuid.UUID, domain cart.DomainType, deliveryFee cart.Money, now time.Time) (*Session, error) {
	if !domain.IsValid() {
		return nil, cart.ErrUnknownDomainType
	}
	return &Session{
		id:          uuid.New(),
		userID:      userID,
		domain:      domain,
		deliveryFee: deliveryFee,
		status:      StatusIdle,
		createdAt:   now,
	}, nil
}

func (s *Session) ID() uuid.UUID                   { return s.id }
func (s *Session) Domain() cart.DomainType         { return s.domain }
func (s *Session) DeliveryFeeEstimate() cart.Money { return s.deliveryFee }

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// BeginValidation moves a fresh session into validating, optionally
// pre-selecting defaults. Nil ids leave the selection empty.
func (s *Session) BeginValidation(defaultAddressID, defaultPaymentMethodID *uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusIdle {
		return ErrInvalidTransition
	}
	s.addressID = copyID(defaultAddressID)
	s.paymentMethodID = copyID(defaultPaymentMethodID)
	s.status = StatusValidating
	return nil
}

func (s *Session) SelectAddress(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	s.addressID = &id
	s.status = StatusValidating
	return nil
}

func (s *Session) SelectPaymentMethod(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return err
	}
	s.paymentMethodID = &id
	s.status = StatusValidating
	return nil
}

// BeginSubmit is the single-flight guard: only one caller can move the session
// into submitting. Missing selections leave the state untouched.
func (s *Session) BeginSubmit() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.editableLocked(); err != nil {
		return View{}, err
	}
	if s.addressID == nil {
		return View{}, ErrAddressRequired
	}
	if s.paymentMethodID == nil {
		return View{}, ErrPaymentMethodRequired
	}
	s.status = StatusSubmitting
	s.lastFailure = ""
	s.attempts++
	return s.viewLocked(), nil
}

func (s *Session) Succeed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusSubmitting {
		return ErrInvalidTransition
	}
	s.status = StatusSucceeded
	s.lastFailure = ""
	return nil
}

// Fail records a failed submission and returns the session to validating.
// Selections are kept for the retry.
func (s *Session) Fail(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusSubmitting {
		return ErrInvalidTransition
	}
	s.status = StatusValidating
	s.lastFailure = reason
	return nil
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) editableLocked() error {
	switch {
	case s.status == StatusSubmitting:
		return ErrSubmissionInProgress
	case s.status == StatusSucceeded:
		return ErrSessionClosed
	case !s.status.isEditable():
		return ErrInvalidTransition
	}
	return nil
}

func (s *Session) viewLocked() View {
	return View{
		ID:                      s.id,
		UserID:                  s.userID,
		DomainType:              s.domain,
		SelectedAddressID:       copyID(s.addressID),
		SelectedPaymentMethodID: copyID(s.paymentMethodID),
		DeliveryFeeEstimate:     s.deliveryFee,
		Status:                  s.status,
		LastFailure:             s.lastFailure,
		Attempts:                s.attempts,
		CreatedAt:               s.createdAt,
	}
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
