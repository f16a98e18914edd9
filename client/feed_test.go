// File: questly/client/feed_test.go
package client

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"questly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func pushEvent(f *RealtimeFeed, id string) {
	f.apply(models.Activity{ID: id, Type: "mission_completed", Timestamp: time.Now()})
}

func TestRealtimeFeedPrependsAndTrims(t *testing.T) {
	feed := newRealtimeFeed(20)

	for i := 1; i <= 25; i++ {
		pushEvent(feed, fmt.Sprintf("e%d", i))
	}

	entries := feed.Entries()
	require.Len(t, entries, 20)
	assert.Equal(t, "e25", entries[0].ID)
	assert.Equal(t, "e24", entries[1].ID)
	assert.Equal(t, "e6", entries[19].ID)
}

func TestRealtimeFeedMarkReadIsIdempotent(t *testing.T) {
	feed := newRealtimeFeed(10)
	pushEvent(feed, "e1")
	pushEvent(feed, "e2")

	feed.MarkRead("e1")
	feed.MarkRead("e1")
	feed.MarkRead("missing")

	entries := feed.Entries()
	require.Len(t, entries, 2)
	assert.False(t, entries[0].Read) // e2
	assert.True(t, entries[1].Read)  // e1
}

func TestRealtimeFeedRemove(t *testing.T) {
	feed := newRealtimeFeed(10)
	pushEvent(feed, "e1")
	pushEvent(feed, "e2")
	pushEvent(feed, "e3")

	feed.Remove("e2")
	feed.Remove("missing")

	entries := feed.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "e3", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)
}

func TestRealtimeFeedCloseStopsMutation(t *testing.T) {
	feed := newRealtimeFeed(10)
	pushEvent(feed, "e1")

	require.NoError(t, feed.Close())

	pushEvent(feed, "e2")
	feed.handleFrame(feedFrame{Type: "feed.toast", Payload: json.RawMessage(`{"id":"t1","severity":"info","message":"hi"}`)})

	entries := feed.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "e1", entries[0].ID)
	select {
	case toast := <-feed.Toasts():
		t.Fatalf("toast delivered after close: %v", toast)
	default:
	}
}

func TestRealtimeFeedHandlesToastFrame(t *testing.T) {
	feed := newRealtimeFeed(10)

	feed.handleFrame(feedFrame{
		Type:    "feed.toast",
		Payload: json.RawMessage(`{"id":"t1","severity":"warning","message":"Bedtime soon!","autoDismissMs":0}`),
	})

	select {
	case toast := <-feed.Toasts():
		assert.Equal(t, models.SeverityWarning, toast.Severity)
		assert.Equal(t, "Bedtime soon!", toast.Message)
	default:
		t.Fatal("expected a toast")
	}
}

func TestRealtimeFeedIgnoresMalformedPayloads(t *testing.T) {
	feed := newRealtimeFeed(10)

	feed.handleFrame(feedFrame{Type: "feed.event", Payload: json.RawMessage(`"not an object"`)})
	feed.handleFrame(feedFrame{Type: "feed.subscribed", Payload: json.RawMessage(`{}`)})
	feed.handleFrame(feedFrame{Type: "pong"})

	assert.Empty(t, feed.Entries())
}

func TestDialFeedSubscribesAndReceivesEvents(t *testing.T) {
	unsubscribes := make(chan []string, 1)

	srv := httptest.NewServer(websocket.Handler(func(ws *websocket.Conn) {
		var frame feedFrame
		if err := websocket.JSON.Receive(ws, &frame); err != nil {
			return
		}
		if frame.Type != "feed.subscribe" {
			return
		}

		ack, _ := json.Marshal(map[string]any{"channels": []string{"user:u1"}})
		_ = websocket.JSON.Send(ws, feedFrame{Type: "feed.subscribed", Payload: ack})

		for _, id := range []string{"e1", "e2"} {
			payload, _ := json.Marshal(models.Activity{ID: id, Type: "xp_awarded", Timestamp: time.Now()})
			_ = websocket.JSON.Send(ws, feedFrame{Type: "feed.event", Payload: payload})
		}

		// Hold the connection open until the client hangs up, capturing
		// any unsubscribe along the way.
		for {
			var inbound feedFrame
			if err := websocket.JSON.Receive(ws, &inbound); err != nil {
				return
			}
			if inbound.Type == "feed.unsubscribe" {
				var payload struct {
					Channels []string `json:"channels"`
				}
				_ = json.Unmarshal(inbound.Payload, &payload)
				unsubscribes <- payload.Channels
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	feed, err := DialFeed(FeedConfig{
		URL:      wsURL,
		Token:    "test-token",
		Channels: []string{"user:u1"},
		Max:      20,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(feed.Entries()) == 2
	}, time.Second, 5*time.Millisecond)

	entries := feed.Entries()
	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, "e1", entries[1].ID)

	require.NoError(t, feed.Close())

	// The unsubscribe must name the channels it is releasing; the server
	// ignores an empty list.
	select {
	case channels := <-unsubscribes:
		assert.Equal(t, []string{"user:u1"}, channels)
	case <-time.After(time.Second):
		t.Fatal("no unsubscribe frame received")
	}
}
