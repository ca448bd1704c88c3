package store

import "grocerypos/backend/internal/domain"

// Settings returns the current settings record.
func (s *Store) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the settings record and persists it immediately.
// Range checks (e.g. non-negative tax rate) are a caller concern.
func (s *Store) UpdateSettings(settings domain.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.persist(settingsFile, s.settings)
	s.derive()
	s.mu.Unlock()

	s.notify()
}
