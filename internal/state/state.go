// Package state holds all session-lifetime data: scans, registry entries,
// alerts, and scan history. Nothing here survives a restart; that is the
// intended lifecycle, not a limitation.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/your-org/weavescope/internal/models"
)

// Store is the single shared structure behind the API. Accessors copy on the
// way out so callers never observe a partially appended slice.
type Store struct {
	mu          sync.RWMutex
	scans       map[string]*models.Scan
	scanOrder   []string // newest first
	registry    []models.RegistryEntry
	alerts      []*models.Alert
	history     []models.HistoryEntry
	registrySeq int
	startedAt   time.Time
}

func NewStore() *Store {
	return &Store{
		scans:     make(map[string]*models.Scan),
		startedAt: time.Now(),
	}
}

func (s *Store) AddScan(scan *models.Scan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans[scan.ID] = scan
	s.scanOrder = append([]string{scan.ID}, s.scanOrder...)
}

func (s *Store) GetScan(id string) *models.Scan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scans[id]
}

func (s *Store) ListScans() []*models.Scan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Scan, 0, len(s.scanOrder))
	for _, id := range s.scanOrder {
		out = append(out, s.scans[id])
	}
	return out
}

// AddRegistryEntry assigns the next ITEM-### id and prepends the entry.
func (s *Store) AddRegistryEntry(e models.RegistryEntry) models.RegistryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrySeq++
	e.ID = fmt.Sprintf("ITEM-%03d", s.registrySeq)
	s.registry = append([]models.RegistryEntry{e}, s.registry...)
	return e
}

func (s *Store) ListRegistry() []models.RegistryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RegistryEntry, len(s.registry))
	copy(out, s.registry)
	return out
}

func (s *Store) AddAlert(a *models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append([]*models.Alert{a}, s.alerts...)
}

func (s *Store) ListAlerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		out = append(out, *a)
	}
	return out
}

// UpdateAlertStatus sets the reviewer status, the only mutable alert field.
func (s *Store) UpdateAlertStatus(id string, status models.AlertStatus) (*models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ID == id {
			a.Status = status
			cp := *a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("alert %s not found", id)
}

func (s *Store) AddHistory(h models.HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]models.HistoryEntry{h}, s.history...)
}

func (s *Store) ListHistory() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// Stats reports session counters for the readiness endpoint.
func (s *Store) Stats() (scans, alerts, registry int, uptime time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scans), len(s.alerts), len(s.registry), time.Since(s.startedAt)
}

// Reset clears the session, as if the process had restarted.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans = make(map[string]*models.Scan)
	s.scanOrder = nil
	s.registry = nil
	s.alerts = nil
	s.history = nil
	s.registrySeq = 0
}
