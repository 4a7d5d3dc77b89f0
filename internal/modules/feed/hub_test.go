package feed

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wallpapers/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DropsSlowSubscriber(t *testing.T) {
	hub := NewHub()
	slow := &client{send: make(chan []byte, 1)}
	fast := &client{send: make(chan []byte, 4)}
	hub.register(slow)
	hub.register(fast)

	assert.Equal(t, 2, hub.Broadcast(Event{Type: EventWallpaperDeleted, WallpaperID: 1}))
	assert.Equal(t, 1, hub.Broadcast(Event{Type: EventWallpaperDeleted, WallpaperID: 2}))
	assert.Equal(t, 1, hub.Count())

	// the slow subscriber's channel is closed after its buffered event
	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
	assert.Len(t, fast.send, 2)
}

func TestHub_UnregisterTwice(t *testing.T) {
	hub := NewHub()
	c := &client{send: make(chan []byte, 1)}
	hub.register(c)

	hub.unregister(c)
	hub.unregister(c)
	assert.Equal(t, 0, hub.Count())
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 3; i++ {
		hub.register(&client{send: make(chan []byte, 1)})
	}
	hub.Close()
	assert.Equal(t, 0, hub.Count())
	assert.Equal(t, 0, hub.Broadcast(Event{Type: EventWallpaperDeleted}))
}

func TestWebSocketFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	at := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	hub.now = func() time.Time { return at }

	router := gin.New()
	NewWSHandler(hub, nil).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/feed"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.WallpaperCreated(context.Background(), &domain.Wallpaper{ID: 5, Title: "aurora", UploaderID: 2, Tags: []string{"sky"}})
	hub.WallpaperDeleted(context.Background(), 4)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var created, deleted Event
	require.NoError(t, conn.ReadJSON(&created))
	require.NoError(t, conn.ReadJSON(&deleted))

	assert.Equal(t, EventWallpaperCreated, created.Type)
	assert.Equal(t, int64(5), created.WallpaperID)
	assert.Equal(t, "aurora", created.Title)
	assert.Equal(t, []string{"sky"}, created.Tags)
	assert.True(t, at.Equal(created.At))

	assert.Equal(t, EventWallpaperDeleted, deleted.Type)
	assert.Equal(t, int64(4), deleted.WallpaperID)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketFeed_RejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewWSHandler(NewHub(), []string{"http://localhost:3000"}).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/feed"
	header := map[string][]string{"Origin": {"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 403, resp.StatusCode)
}
