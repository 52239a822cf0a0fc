// Package cart holds the client-local cart and wishlist: explicit store
// objects with defined mutation methods, each persisting to the session
// store on every change and notifying a single subscriber.
package cart

import (
	"log"
	"sync"

	"github.com/hoopkicks/hoopkicks-api/models"
	"github.com/hoopkicks/hoopkicks-api/session"
)

// Entry is one product+size selection. Price, name and image are
// denormalized for display.
type Entry struct {
	ProductID uint   `json:"product_id"`
	Size      int    `json:"size"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
	Name      string `json:"name"`
	Image     string `json:"image"`
}

type Cart struct {
	mu       sync.Mutex
	store    *session.Store
	role     models.Role
	entries  []Entry
	onChange func([]Entry)
}

// New loads any persisted cart from the session store. The role is that of
// the current shopper; admins cannot shop.
func New(store *session.Store, role models.Role) *Cart {
	c := &Cart{store: store, role: role}
	store.Get(session.KeyCart, &c.entries)
	return c
}

// Subscribe registers the single change listener, replacing any previous
// one. Called with a snapshot after every mutation.
func (c *Cart) Subscribe(fn func([]Entry)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Add puts one unit of the given product+size into the cart, merging with
// an existing entry for the same pair.
func (c *Cart) Add(p models.Product, size int) {
	if c.role == models.RoleAdmin {
		log.Printf("cart: ignoring add for admin user (product %d)", p.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		if c.entries[i].ProductID == p.ID && c.entries[i].Size == size {
			c.entries[i].Quantity++
			c.persist()
			return
		}
	}
	c.entries = append(c.entries, Entry{
		ProductID: p.ID,
		Size:      size,
		Quantity:  1,
		Price:     p.Price,
		Name:      p.Name,
		Image:     p.Image,
	})
	c.persist()
}

// Remove deletes the matching entry. No-op if absent.
func (c *Cart) Remove(productID uint, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID, size)
}

func (c *Cart) removeLocked(productID uint, size int) {
	for i := range c.entries {
		if c.entries[i].ProductID == productID && c.entries[i].Size == size {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity overwrites the entry's quantity. A quantity below 1 removes
// the entry. The stock ceiling is advisory here; checkout re-validates.
func (c *Cart) SetQuantity(productID uint, size, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.removeLocked(productID, size)
		return
	}
	for i := range c.entries {
		if c.entries[i].ProductID == productID && c.entries[i].Size == size {
			c.entries[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Total is the sum of price × quantity across all entries.
func (c *Cart) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, e := range c.entries {
		total += e.Price * e.Quantity
	}
	return total
}

// Items returns a snapshot of the entries.
func (c *Cart) Items() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

// Clear empties the cart (item removal on order placement).
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.persist()
}

// persist writes through to the session store and notifies the subscriber.
// Callers hold c.mu.
func (c *Cart) persist() {
	if err := c.store.Put(session.KeyCart, c.entries); err != nil {
		log.Printf("cart: failed to persist: %v", err)
	}
	if c.onChange != nil {
		c.onChange(append([]Entry(nil), c.entries...))
	}
}
