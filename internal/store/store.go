// Package store owns the in-memory POS state: the catalog (categories and
// products), the append-only sales ledger, and the settings record. Every
// mutation persists the touched collection, recomputes the derived product
// fields, and then notifies subscribers synchronously. The store is the only
// writer; consumers receive it by reference instead of through a global.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"grocerypos/backend/internal/domain"
	"grocerypos/backend/internal/storage"
)

const (
	categoriesFile   = "categories"
	productsFile     = "products"
	transactionsFile = "transactions"
	settingsFile     = "settings"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptySale = errors.New("sale requires at least one item")
)

type Store struct {
	mu  sync.RWMutex
	dir string

	categories   []domain.Category
	products     []domain.Product
	transactions []domain.Transaction
	settings     domain.Settings

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

// Open loads all collections from dir, seeding the default categories when
// none are persisted yet. Unreadable files fall back to empty collections.
func Open(dir string) (*Store, error) {
	if err := storage.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	s := &Store{
		dir:         dir,
		subscribers: make(map[int]func()),
	}
	s.loadAll()
	return s, nil
}

// Dir returns the data directory the store persists to.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) loadAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories, _ = storage.Load[[]domain.Category](s.dir, categoriesFile)
	s.products, _ = storage.Load[[]domain.Product](s.dir, productsFile)
	s.transactions, _ = storage.Load[[]domain.Transaction](s.dir, transactionsFile)

	settings, ok := storage.Load[domain.Settings](s.dir, settingsFile)
	if !ok {
		settings = domain.DefaultSettings()
	}
	s.settings = settings

	if len(s.categories) == 0 {
		s.categories = domain.DefaultCategories()
		s.persist(categoriesFile, s.categories)
	}

	s.derive()
}

// Reload re-reads every collection from disk and notifies subscribers. Used
// when the data files change underneath the process.
func (s *Store) Reload() {
	s.loadAll()
	s.notify()
}

// Refresh recomputes the derived product fields from current base state and
// notifies subscribers.
func (s *Store) Refresh() {
	s.mu.Lock()
	s.derive()
	s.mu.Unlock()
	s.notify()
}

// Categories returns a snapshot copy of all categories.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Products returns a snapshot copy of all products, derived fields included.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Transactions returns a snapshot copy of the ledger.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transaction, len(s.transactions))
	for i, tx := range s.transactions {
		out[i] = cloneTransaction(tx)
	}
	return out
}

// Subscribe registers fn to run synchronously after every mutation. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// notify must not be called while s.mu is held: subscribers are expected to
// read back through the snapshot accessors.
func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// persist writes a collection and swallows failures: a failed save degrades
// to "not persisted" with a logged error, it never aborts the mutation.
func (s *Store) persist(name string, value any) {
	if err := storage.Save(s.dir, name, value); err != nil {
		log.Error().Err(err).Str("collection", name).Msg("failed to persist collection")
	}
}

// derive recomputes the derived product fields. Callers must hold s.mu.
func (s *Store) derive() {
	s.products = Annotate(s.categories, s.products, s.settings)
}

func cloneTransaction(tx domain.Transaction) domain.Transaction {
	items := make([]domain.TransactionItem, len(tx.Items))
	copy(items, tx.Items)
	tx.Items = items
	return tx
}

func nextID[T any](items []T, id func(T) int) int {
	max := 0
	for _, item := range items {
		if id(item) > max {
			max = id(item)
		}
	}
	return max + 1
}
