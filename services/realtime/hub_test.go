// File: questly/services/realtime/hub_test.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"questly/models"
	"questly/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func eventFrame(id string) wsFrame {
	return wsFrame{
		Type:    "feed.event",
		Payload: mustJSON(models.Activity{ID: id, Type: "xp_awarded", Timestamp: time.Now()}),
	}
}

func TestHubRecentBufferTrimsMostRecentFirst(t *testing.T) {
	hub := newFeedHub()

	for i := 1; i <= maxRecentFrames+5; i++ {
		hub.remember("user:u1", eventFrame(fmt.Sprintf("e%d", i)))
	}

	recent := hub.recentOn("user:u1")
	require.Len(t, recent, maxRecentFrames)

	var first, last models.Activity
	require.NoError(t, json.Unmarshal(recent[0].Payload, &first))
	require.NoError(t, json.Unmarshal(recent[len(recent)-1].Payload, &last))
	assert.Equal(t, fmt.Sprintf("e%d", maxRecentFrames+5), first.ID)
	assert.Equal(t, "e6", last.ID)
}

func TestHubRecentBufferIsPerChannel(t *testing.T) {
	hub := newFeedHub()
	hub.remember("user:u1", eventFrame("a"))
	hub.remember("user:u2", eventFrame("b"))

	assert.Len(t, hub.recentOn("user:u1"), 1)
	assert.Len(t, hub.recentOn("user:u2"), 1)
	assert.Empty(t, hub.recentOn("classroom:c1"))
}

func TestHubRecentOnReturnsCopy(t *testing.T) {
	hub := newFeedHub()
	hub.remember("user:u1", eventFrame("a"))

	recent := hub.recentOn("user:u1")
	recent[0].Type = "mutated"

	assert.Equal(t, "feed.event", hub.recentOn("user:u1")[0].Type)
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanSubscribe(ctx context.Context, userID, role, channel string) (bool, error) {
	return true, nil
}

// Publishing before anyone is connected must not be lost: the buffered
// frames are replayed right after the subscribe ack, oldest first.
func TestSubscribeReplaysBufferedEvents(t *testing.T) {
	svc := NewService(nil, allowAllAuthorizer{})

	for _, id := range []string{"e1", "e2", "e3"} {
		payload, err := json.Marshal(Event{
			Kind:     EventKindActivity,
			Activity: &models.Activity{ID: id, Type: "mission_completed", Timestamp: time.Now()},
		})
		require.NoError(t, err)
		svc.dispatch(utils.FeedChannelPrefix+"user:u1", payload)
	}

	srv := httptest.NewServer(svc.Handler(func(token string) (string, string, error) {
		return "u1", "learner", nil
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?token=test"
	conn, err := websocket.Dial(wsURL, "", "http://localhost/")
	require.NoError(t, err)
	defer conn.Close()

	sub, _ := json.Marshal(subscribePayload{Channels: []string{"user:u1"}})
	require.NoError(t, websocket.JSON.Send(conn, wsFrame{Type: "feed.subscribe", RequestID: "r1", Payload: sub}))

	var ack wsFrame
	require.NoError(t, websocket.JSON.Receive(conn, &ack))
	assert.Equal(t, "feed.subscribed", ack.Type)
	assert.Equal(t, "r1", ack.RequestID)

	// Replay arrives oldest first so a prepending client ends newest-on-top.
	for _, want := range []string{"e1", "e2", "e3"} {
		var frame wsFrame
		require.NoError(t, websocket.JSON.Receive(conn, &frame))
		require.Equal(t, "feed.event", frame.Type)

		var activity models.Activity
		require.NoError(t, json.Unmarshal(frame.Payload, &activity))
		assert.Equal(t, want, activity.ID)
	}
}
