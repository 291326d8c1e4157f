package catalog

import (
	"storefront-core/internal/events"
)

type Category string

const (
	CategorySoft  Category = "soft"
	CategoryHard  Category = "hard"
	CategoryOther Category = "other"
)

// Product is a catalog item as delivered by the remote service. A nil Price
// means the price is not set; such products are browsable but cannot enter
// the basket.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Price       *float64 `json:"price"`
}

// Entry is a product plus its basket-membership flag. The catalog model is
// the single authority for InBasket; the basket holds references to the same
// entries and must never disagree with the flag.
type Entry struct {
	Product
	InBasket bool
}

// Loaded is published after the catalog is replaced.
type Loaded struct {
	Entries []*Entry
}

func (Loaded) Name() string { return events.CatalogLoaded }

// Added is published when a product's basket flag flips to true.
type Added struct {
	Entry *Entry
}

func (Added) Name() string { return events.ProductAdded }

// Removed is published when a product's basket flag flips to false.
type Removed struct {
	ProductID string
}

func (Removed) Name() string { return events.ProductRemoved }

// Model holds the known products and their basket-membership flags.
type Model struct {
	bus     *events.Bus
	entries []*Entry
	byID    map[string]*Entry
}

func NewModel(bus *events.Bus) *Model {
	return &Model{bus: bus, byID: make(map[string]*Entry)}
}

// Load replaces the catalog. Every entry starts outside the basket.
func (m *Model) Load(products []Product) {
	m.entries = make([]*Entry, 0, len(products))
	m.byID = make(map[string]*Entry, len(products))

	for _, p := range products {
		entry := &Entry{Product: p}
		m.entries = append(m.entries, entry)
		m.byID[p.ID] = entry
	}

	m.bus.Publish(Loaded{Entries: m.entries})
}

// Get returns the entry for id.
func (m *Model) Get(id string) (*Entry, error) {
	entry, ok := m.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return entry, nil
}

// List returns all entries in catalog order.
func (m *Model) List() []*Entry {
	return m.entries
}

// MarkInBasket sets the basket flag for id. Setting a flag to its current
// value is a silent no-op. A product without a price cannot be marked as in
// the basket.
func (m *Model) MarkInBasket(id string, flag bool) error {
	entry, ok := m.byID[id]
	if !ok {
		return ErrProductNotFound
	}
	if entry.InBasket == flag {
		return nil
	}
	if flag && entry.Price == nil {
		return ErrPriceNotSet
	}

	entry.InBasket = flag
	if flag {
		m.bus.Publish(Added{Entry: entry})
	} else {
		m.bus.Publish(Removed{ProductID: id})
	}
	return nil
}

// InBasket reports whether id is flagged as in the basket.
func (m *Model) InBasket(id string) bool {
	entry, ok := m.byID[id]
	return ok && entry.InBasket
}

// ListInBasket returns the entries currently flagged, in catalog order.
func (m *Model) ListInBasket() []*Entry {
	var in []*Entry
	for _, entry := range m.entries {
		if entry.InBasket {
			in = append(in, entry)
		}
	}
	return in
}

// ClearBasket resets every flag without publishing per-product events. Used
// after a successful order, where the basket model announces the clearing.
func (m *Model) ClearBasket() {
	for _, entry := range m.entries {
		entry.InBasket = false
	}
}
