package cart

import "sync"

// Persister receives the full item list after every mutation. Implementations
// must not block; durable writes are expected to happen asynchronously.
type Persister interface {
	Persist(domain DomainType, items []Item)
}

type nopPersister struct{}

func (nopPersister) Persist(DomainType, []Item) {}

// Store owns the line items of one domain. Mutations are serialized and
// applied in call order; insertion order is preserved for display.
type Store struct {
	mu        sync.RWMutex
	domain    DomainType
	items     []Item
	index     map[string]int
	persister Persister
}

// NewStore builds a store seeded with previously persisted items. Seeding does
// not trigger persistence. Duplicate ids in the seed are merged.
func NewStore(domain DomainType, persister Persister, seed ...Item) (*Store, error) {
	if !domain.IsValid() {
		return nil, ErrUnknownDomainType
	}
	if persister == nil {
		persister = nopPersister{}
	}
	s := &Store{
		domain:    domain,
		index:     make(map[string]int),
		persister: persister,
	}
	for _, it := range seed {
		if it.DomainType != domain {
			return nil, ErrDomainMismatch
		}
		if err := it.Validate(); err != nil {
			return nil, err
		}
		if err := s.addLocked(it, it.Quantity); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Domain() DomainType {
	return s.domain
}

// AddItem inserts the item with qty, or adds qty to the existing entry with the
// same id. The existing entry keeps its name, price and metadata. A merge that
// would pass MaxQuantity is rejected and leaves the entry unchanged.
func (s *Store) AddItem(item Item, qty int) error {
	if qty < 1 || qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	if item.DomainType == "" {
		item.DomainType = s.domain
	}
	if item.DomainType != s.domain {
		return ErrDomainMismatch
	}
	item.Quantity = qty
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.addLocked(item, qty); err != nil {
		return err
	}
	s.persistLocked()
	return nil
}

func (s *Store) IncreaseQuantity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	if s.items[i].Quantity >= MaxQuantity {
		return ErrInvalidQuantity
	}
	s.items[i].Quantity++
	s.persistLocked()
	return nil
}

// DecreaseQuantity never drops below 1; RemoveItem is the only way to delete a line.
func (s *Store) DecreaseQuantity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	if s.items[i].Quantity <= 1 {
		return nil
	}
	s.items[i].Quantity--
	s.persistLocked()
	return nil
}

func (s *Store) RemoveItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrItemNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.reindexLocked()
	s.persistLocked()
	return nil
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.index = make(map[string]int)
	s.persistLocked()
}

// Deduct subtracts ordered quantities by item id and drops lines that reach
// zero. Ids not in the store are ignored. Persists only when something changed.
func (s *Store) Deduct(quantities map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]Item, 0, len(s.items))
	changed := false
	for _, it := range s.items {
		q := quantities[it.ID]
		if q <= 0 {
			kept = append(kept, it)
			continue
		}
		changed = true
		if it.Quantity > q {
			it.Quantity -= q
			kept = append(kept, it)
		}
	}
	if !changed {
		return
	}
	s.items = kept
	s.reindexLocked()
	s.persistLocked()
}

// Items returns a copy in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *Store) Item(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i].clone(), true
}

// ItemCount is the sum of quantities.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) LineCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) TotalPrice() Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Subtotal(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.LineCount() == 0
}

func (s *Store) addLocked(item Item, qty int) error {
	if i, ok := s.index[item.ID]; ok {
		if qty > MaxQuantity-s.items[i].Quantity {
			return ErrInvalidQuantity
		}
		s.items[i].Quantity += qty
		return nil
	}
	c := item.clone()
	c.Quantity = qty
	s.items = append(s.items, c)
	s.index[c.ID] = len(s.items) - 1
	return nil
}

func (s *Store) reindexLocked() {
	s.index = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.index[it.ID] = i
	}
}

func (s *Store) copyLocked() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.clone()
	}
	return out
}

func (s *Store) persistLocked() {
	s.persister.Persist(s.domain, s.copyLocked())
}

// Subtotal is Σ unitPrice × quantity.
func Subtotal(items []Item) Money {
	var total Money
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
