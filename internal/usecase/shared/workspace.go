package shared

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"unicart/internal/domain/cart"
	"unicart/internal/domain/checkout"
	"unicart/internal/pkg/clock"
	"unicart/internal/pkg/config"
	"unicart/internal/pkg/debounce"
	"unicart/internal/pkg/errs"

	"github.com/google/uuid"
)

const snapshotSaveTimeout = 5 * time.Second

var ErrCartUnavailable = errs.New("cart storage unavailable")

func SnapshotKey(userID uuid.UUID, domain cart.DomainType) string {
	return "cart:" + userID.String() + ":" + string(domain)
}

// Workspaces holds the live per-user state: one lazily hydrated cart store per
// domain and at most one checkout session per domain.
type Workspaces struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*workspace
	snapshots CartSnapshotStore
	debouncer *debounce.Debouncer
	clock     clock.Clock
	logger    *slog.Logger
}

type workspace struct {
	mu       sync.Mutex
	stores   map[cart.DomainType]*cart.Store
	sessions map[cart.DomainType]*checkout.Session
	lastUsed time.Time // guarded by Workspaces.mu
}

func NewWorkspaces(snapshots CartSnapshotStore, cfg config.Config, clk clock.Clock, logger *slog.Logger) *Workspaces {
	return &Workspaces{
		users:     make(map[uuid.UUID]*workspace),
		snapshots: snapshots,
		debouncer: debounce.New(cfg.Cart.PersistDebounce),
		clock:     clk,
		logger:    logger,
	}
}

// Store returns the user's cart for domain, hydrating it from the snapshot
// store on first use. A corrupt snapshot yields an empty cart; a failed read
// yields ErrCartUnavailable and nothing is cached.
func (w *Workspaces) Store(ctx context.Context, userID uuid.UUID, domain cart.DomainType) (*cart.Store, error) {
	if !domain.IsValid() {
		return nil, cart.ErrUnknownDomainType
	}
	ws := w.workspace(userID)

	ws.mu.Lock()
	defer ws.mu.Unlock()

	if s, ok := ws.stores[domain]; ok {
		return s, nil
	}

	seed, err := w.hydrate(ctx, userID, domain)
	if err != nil {
		return nil, err
	}
	s, err := cart.NewStore(domain, &snapshotPersister{w: w, userID: userID}, seed...)
	if err != nil {
		return nil, err
	}
	ws.stores[domain] = s
	return s, nil
}

// Stores returns every domain's cart in cart.AllDomainTypes order.
func (w *Workspaces) Stores(ctx context.Context, userID uuid.UUID) ([]*cart.Store, error) {
	stores := make([]*cart.Store, 0, len(cart.AllDomainTypes))
	for _, d := range cart.AllDomainTypes {
		s, err := w.Store(ctx, userID, d)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, nil
}

func (w *Workspaces) Session(userID uuid.UUID, domain cart.DomainType) (*checkout.Session, bool) {
	ws := w.workspace(userID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	s, ok := ws.sessions[domain]
	return s, ok
}

// PutSessionIfAbsent registers s unless a session for its domain already
// exists, in which case the existing one is returned with false.
func (w *Workspaces) PutSessionIfAbsent(userID uuid.UUID, s *checkout.Session) (*checkout.Session, bool) {
	ws := w.workspace(userID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if existing, ok := ws.sessions[s.Domain()]; ok {
		return existing, false
	}
	ws.sessions[s.Domain()] = s
	return s, true
}

// DropSession removes the domain's session only if it is still sessionID.
func (w *Workspaces) DropSession(userID uuid.UUID, domain cart.DomainType, sessionID uuid.UUID) bool {
	ws := w.workspace(userID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	s, ok := ws.sessions[domain]
	if !ok || s.ID() != sessionID {
		return false
	}
	delete(ws.sessions, domain)
	return true
}

// Flush writes every pending cart snapshot now.
func (w *Workspaces) Flush() {
	w.debouncer.Flush()
}

// Close flushes pending writes; later mutations are written synchronously.
func (w *Workspaces) Close() {
	w.debouncer.Close()
}

// Len is the number of users with live state.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.users)
}

// EvictIdle drops the live state of users not seen for idle. Users with an
// open checkout session or an unfinished snapshot write are kept. Evicted
// carts re-hydrate from the snapshot store on next use.
func (w *Workspaces) EvictIdle(idle time.Duration) int {
	cutoff := w.clock.Now().Add(-idle)

	w.mu.Lock()
	defer w.mu.Unlock()
	evicted := 0
	for userID, ws := range w.users {
		if ws.lastUsed.After(cutoff) {
			continue
		}
		if !ws.mu.TryLock() {
			continue
		}
		keep := len(ws.sessions) > 0 || w.writesInFlight(userID)
		ws.mu.Unlock()
		if keep {
			continue
		}
		delete(w.users, userID)
		evicted++
	}
	return evicted
}

func (w *Workspaces) writesInFlight(userID uuid.UUID) bool {
	for _, d := range cart.AllDomainTypes {
		if w.debouncer.Busy(SnapshotKey(userID, d)) {
			return true
		}
	}
	return false
}

func (w *Workspaces) workspace(userID uuid.UUID) *workspace {
	w.mu.Lock()
	defer w.mu.Unlock()
	ws, ok := w.users[userID]
	if !ok {
		ws = &workspace{
			stores:   make(map[cart.DomainType]*cart.Store),
			sessions: make(map[cart.DomainType]*checkout.Session),
		}
		w.users[userID] = ws
	}
	ws.lastUsed = w.clock.Now()
	return ws
}

func (w *Workspaces) hydrate(ctx context.Context, userID uuid.UUID, domain cart.DomainType) ([]cart.Item, error) {
	data, err := w.snapshots.Load(ctx, userID, domain)
	if err != nil {
		w.logger.Warn("failed to load cart snapshot",
			"user_id", userID.String(),
			"domain", string(domain),
			"error", err)
		return nil, errs.Mark(errs.Wrap(err, "load cart snapshot"), ErrCartUnavailable)
	}

	items, err := cart.DecodeSnapshot(domain, data)
	if err != nil {
		w.logger.Warn("discarding unreadable cart snapshot",
			"user_id", userID.String(),
			"domain", string(domain),
			"error", err)
		return nil, nil
	}
	return items, nil
}

type snapshotPersister struct {
	w      *Workspaces
	userID uuid.UUID
}

func (p *snapshotPersister) Persist(domain cart.DomainType, items []cart.Item) {
	data, err := cart.EncodeSnapshot(domain, items)
	if err != nil {
		p.w.logger.Error("failed to encode cart snapshot", "domain", string(domain), "error", err)
		return
	}

	userID := p.userID
	p.w.debouncer.Schedule(SnapshotKey(userID, domain), func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotSaveTimeout)
		defer cancel()
		if err := p.w.snapshots.Save(ctx, userID, domain, data); err != nil {
			p.w.logger.Warn("failed to persist cart snapshot",
				"user_id", userID.String(),
				"domain", string(domain),
				"error", err)
		}
	})
}
