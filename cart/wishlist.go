package cart

import (
	"log"
	"sync"

	"github.com/hoopkicks/hoopkicks-api/session"
)

// Wishlist is the client-local list of saved product ids.
type Wishlist struct {
	mu       sync.Mutex
	store    *session.Store
	ids      []uint
	onChange func([]uint)
}

func NewWishlist(store *session.Store) *Wishlist {
	w := &Wishlist{store: store}
	store.Get(session.KeyWishlist, &w.ids)
	return w
}

// SubscribeWishlist registers the single change listener.
func (w *Wishlist) Subscribe(fn func([]uint)) {
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// Toggle adds the product id if absent, removes it if present. Returns
// whether the id is in the list afterwards.
func (w *Wishlist) Toggle(productID uint) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, id := range w.ids {
		if id == productID {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			w.persist()
			return false
		}
	}
	w.ids = append(w.ids, productID)
	w.persist()
	return true
}

func (w *Wishlist) Has(productID uint) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// IDs returns a snapshot of the saved product ids.
func (w *Wishlist) IDs() []uint {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]uint(nil), w.ids...)
}

func (w *Wishlist) persist() {
	if err := w.store.Put(session.KeyWishlist, w.ids); err != nil {
		log.Printf("wishlist: failed to persist: %v", err)
	}
	if w.onChange != nil {
		w.onChange(append([]uint(nil), w.ids...))
	}
}
