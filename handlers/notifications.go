package handlers

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"p9e.in/vms/models"
)

// NotificationPoller keeps a cached copy of the admin's unread notifications,
// refreshed on a fixed interval so the console badge stays current without a
// backend round trip per page load.
type NotificationPoller struct {
	email    string
	interval time.Duration

	mu     sync.RWMutex
	unread []models.Notification

	stop chan struct{}
	once sync.Once
}

// NewNotificationPoller builds a poller for the given inbox. The refresh
// interval matches the console's badge cadence.
func NewNotificationPoller(email string) *NotificationPoller {
	return &NotificationPoller{
		email:    email,
		interval: 30 * time.Second,
		stop:     make(chan struct{}),
	}
}

// Start refreshes immediately, then on every tick until Stop is called.
func (p *NotificationPoller) Start() {
	log.Println("🔔 starting notification poller")
	p.refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.refresh()
		case <-p.stop:
			return
		}
	}
}

// Stop ends the polling loop. Safe to call more than once.
func (p *NotificationPoller) Stop() {
	p.once.Do(func() { close(p.stop) })
}

func (p *NotificationPoller) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unread, err := fleet.Notifications(ctx, p.email)
	if err != nil {
		log.Printf("notification refresh failed: %v", err)
		return
	}
	p.mu.Lock()
	p.unread = unread
	p.mu.Unlock()
}

// Unread returns the cached snapshot.
func (p *NotificationPoller) Unread() []models.Notification {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]models.Notification, len(p.unread))
	copy(out, p.unread)
	return out
}

// markRead drops a notification from the cache without waiting for the next
// tick.
func (p *NotificationPoller) markRead(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.unread[:0]
	for _, n := range p.unread {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	p.unread = kept
}

// GetNotifications serves the cached unread list.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	if poller == nil {
		respondJSON(w, http.StatusOK, []models.Notification{})
		return
	}
	respondJSON(w, http.StatusOK, poller.Unread())
}

// MarkNotificationRead marks one notification read on the backend and evicts
// it from the cache.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := fleet.MarkNotificationRead(r.Context(), id); err != nil {
		relayBackendError(w, err)
		return
	}
	if poller != nil {
		poller.markRead(id)
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read."})
}
