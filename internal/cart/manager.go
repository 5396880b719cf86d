package cart

import (
	"sync"
	"time"
)

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Manager hands out one cart per storefront session and sweeps carts that
// have been idle longer than the TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
}

func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	go m.sweep()

	return m
}

// Cart returns the session's cart, creating an empty one on first access.
func (m *Manager) Cart(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{cart: New()}
		m.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()

	return s.cart
}

// Drop discards the session's cart entirely.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)

			m.mu.Lock()
			for id, s := range m.sessions {
				if s.lastSeen.Before(cutoff) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) Stop() {
	m.once.Do(func() { close(m.done) })
}
