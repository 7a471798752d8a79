package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

const snapshotVersion = 1

var ErrCorruptSnapshot = errors.New("corrupt cart snapshot")

type snapshot struct {
	Version int            `json:"version"`
	Domain  DomainType     `json:"domain"`
	Items   []snapshotItem `json:"items"`
}

type snapshotItem struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	UnitPrice int64             `json:"unitPrice"`
	Quantity  int               `json:"quantity"`
	ImageRef  string            `json:"imageRef,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EncodeSnapshot serializes the ordered item list of one domain cart.
func EncodeSnapshot(domain DomainType, items []Item) ([]byte, error) {
	snap := snapshot{
		Version: snapshotVersion,
		Domain:  domain,
		Items:   make([]snapshotItem, 0, len(items)),
	}
	for _, it := range items {
		snap.Items = append(snap.Items, snapshotItem{
			ID:        it.ID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.Cents(),
			Quantity:  it.Quantity,
			ImageRef:  it.ImageRef,
			Metadata:  it.Metadata,
		})
	}
	return json.Marshal(snap)
}

// DecodeSnapshot rejects anything it cannot fully trust; callers fall back to an
// empty cart on error.
func DecodeSnapshot(domain DomainType, data []byte) ([]Item, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}
	if snap.Domain != domain {
		return nil, fmt.Errorf("%w: domain %q stored under %q", ErrCorruptSnapshot, snap.Domain, domain)
	}

	items := make([]Item, 0, len(snap.Items))
	for _, si := range snap.Items {
		price, err := NewMoney(si.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		it := Item{
			ID:         si.ID,
			DomainType: domain,
			Name:       si.Name,
			UnitPrice:  price,
			Quantity:   si.Quantity,
			ImageRef:   si.ImageRef,
			Metadata:   si.Metadata,
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		items = append(items, it)
	}
	return items, nil
}
