package basket

import (
	"storefront-core/internal/catalog"
	"storefront-core/internal/events"
)

// Snapshot is an immutable copy of the basket state taken for event payloads
// and order submission.
type Snapshot struct {
	Items []*catalog.Entry
	Total float64
	Count int
}

// ProductIDs returns the item ids in display order.
func (s Snapshot) ProductIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Changed is published after an add, remove or sync mutates the basket.
type Changed struct {
	Basket Snapshot
}

func (Changed) Name() string { return events.BasketChanged }

// Cleared is published when the basket is emptied wholesale.
type Cleared struct {
	Basket Snapshot
}

func (Cleared) Name() string { return events.BasketCleared }

// Model holds the products currently in the basket, keyed by id with
// insertion order preserved, plus the derived total and count.
type Model struct {
	bus   *events.Bus
	items []*catalog.Entry
	total float64
}

func NewModel(bus *events.Bus) *Model {
	return &Model{bus: bus}
}

// Add appends entry to the basket. Adding an id that is already present is a
// silent no-op: membership is a set. Entries without a price are refused.
func (m *Model) Add(entry *catalog.Entry) error {
	if entry.Price == nil {
		return ErrPriceNotSet
	}
	for _, item := range m.items {
		if item.ID == entry.ID {
			return nil
		}
	}

	m.items = append(m.items, entry)
	m.recompute()
	m.bus.Publish(Changed{Basket: m.Snapshot()})
	return nil
}

// Remove deletes the item with id. Absent ids are a silent no-op.
func (m *Model) Remove(id string) {
	for i, item := range m.items {
		if item.ID == id {
			m.items = append(m.items[:i:i], m.items[i+1:]...)
			m.recompute()
			m.bus.Publish(Changed{Basket: m.Snapshot()})
			return
		}
	}
}

// Clear empties the basket.
func (m *Model) Clear() {
	m.items = nil
	m.recompute()
	m.bus.Publish(Cleared{Basket: m.Snapshot()})
}

// SyncFrom rebuilds the item list from the catalog's flags, preserving
// catalog order. Used after a catalog reload so basket state derives from the
// single source of truth instead of being carried over stale.
func (m *Model) SyncFrom(entries []*catalog.Entry) {
	m.items = nil
	for _, entry := range entries {
		if entry.InBasket {
			m.items = append(m.items, entry)
		}
	}
	m.recompute()
	m.bus.Publish(Changed{Basket: m.Snapshot()})
}

func (m *Model) Items() []*catalog.Entry { return m.items }
func (m *Model) Total() float64 { return m.total }
func (m *Model) Count() int { return len(m.items) }
func (m *Model) IsEmpty() bool { return len(m.items) == 0 }

// Snapshot copies the current state.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		Items: append([]*catalog.Entry(nil), m.items...),
		Total: m.total,
		Count: len(m.items),
	}
}

func (m *Model) recompute() {
	m.total = 0
	for _, item := range m.items {
		// Add refuses nil prices, but SyncFrom trusts the catalog; read a
		// missing price as zero rather than crash on bad upstream data.
		if item.Price != nil {
			m.total += *item.Price
		}
	}
}
