// Package feed pushes wallpaper events to websocket subscribers.
package feed

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"wallpapers/internal/domain"

	"github.com/gorilla/websocket"
)

const sendBuffer = 16

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans events out to subscribers. A subscriber whose buffer is full is
// dropped instead of slowing the broadcaster down.
type Hub struct {
	clients map[*client]struct{}
	mutex   sync.RWMutex
	now     func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		now:     time.Now,
	}
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast queues ev for every subscriber and returns how many accepted it.
func (h *Hub) Broadcast(ev Event) int {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("feed: marshal failed type=%s err=%v", ev.Type, err)
		return 0
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	delivered := 0
	for c := range h.clients {
		select {
		case c.send <- data:
			delivered++
		default:
			log.Printf("feed: dropping slow subscriber type=%s", ev.Type)
			h.removeLocked(c)
		}
	}
	return delivered
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) WallpaperCreated(_ context.Context, w *domain.Wallpaper) {
	h.Broadcast(Event{
		Type:         EventWallpaperCreated,
		WallpaperID:  w.ID,
		Title:        w.Title,
		ThumbnailURL: w.ThumbnailURL,
		UploaderID:   w.UploaderID,
		Tags:         w.Tags,
		At:           h.now(),
	})
}

func (h *Hub) WallpaperDeleted(_ context.Context, id int64) {
	h.Broadcast(Event{
		Type:        EventWallpaperDeleted,
		WallpaperID: id,
		At:          h.now(),
	})
}
