// File: questly/client/feed.go
package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"questly/models"

	"golang.org/x/net/websocket"
)

const (
	defaultFeedMax      = 50
	defaultFeedToastBuf = 8
)

// feedFrame mirrors the websocket envelope the feed endpoint speaks.
type feedFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// FeedConfig configures a RealtimeFeed connection.
type FeedConfig struct {
	// URL is the websocket endpoint, e.g. ws://host/ws/feed.
	URL      string
	Token    string
	Origin   string
	Channels []string

	// Max bounds the in-memory list; older entries are trimmed as new ones
	// arrive. Defaults to 50.
	Max int
}

// RealtimeFeed maintains a bounded, most-recent-first list of activity
// events pushed over the websocket feed. New events are prepended and the
// list is trimmed to Max; there is no dedup and no replay of missed events.
// MarkRead and Remove are local-only and never call the API.
type RealtimeFeed struct {
	mu      sync.Mutex
	entries []models.Activity
	max     int
	closed  bool

	conn     *websocket.Conn
	channels []string
	toasts   chan models.Toast
}

// DialFeed connects to the feed endpoint, subscribes to the configured
// channels and starts the read loop.
func DialFeed(cfg FeedConfig) (*RealtimeFeed, error) {
	origin := cfg.Origin
	if origin == "" {
		origin = "http://localhost/"
	}
	sep := "?"
	if strings.Contains(cfg.URL, "?") {
		sep = "&"
	}
	conn, err := websocket.Dial(cfg.URL+sep+"token="+cfg.Token, "", origin)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}

	f := newRealtimeFeed(cfg.Max)
	f.conn = conn
	f.channels = append([]string(nil), cfg.Channels...)

	if err := f.sendChannelFrame("feed.subscribe", cfg.Channels); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	go f.readLoop()
	return f, nil
}

func newRealtimeFeed(max int) *RealtimeFeed {
	if max <= 0 {
		max = defaultFeedMax
	}
	return &RealtimeFeed{
		max:    max,
		toasts: make(chan models.Toast, defaultFeedToastBuf),
	}
}

// Entries returns a copy of the current list, most recent first.
func (f *RealtimeFeed) Entries() []models.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Activity, len(f.entries))
	copy(out, f.entries)
	return out
}

// MarkRead flags a local entry as read. Marking an already-read or unknown
// entry is a no-op.
func (f *RealtimeFeed) MarkRead(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Read = true
			return
		}
	}
}

// Remove drops a local entry. Unknown ids are ignored.
func (f *RealtimeFeed) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

// Toasts yields toast notices pushed over the feed. Buffered; the read loop
// never blocks on a slow consumer.
func (f *RealtimeFeed) Toasts() <-chan models.Toast {
	return f.toasts
}

// Close unsubscribes, closes the connection and freezes the list. Events
// still in flight when Close is called are dropped.
func (f *RealtimeFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	conn := f.conn
	channels := f.channels
	f.mu.Unlock()

	if conn == nil {
		return nil
	}
	// Best effort: the server only releases channels named in the payload,
	// and also cleans up on disconnect.
	_ = f.sendChannelFrame("feed.unsubscribe", channels)
	return conn.Close()
}

func (f *RealtimeFeed) sendChannelFrame(frameType string, channels []string) error {
	payload, err := json.Marshal(struct {
		Channels []string `json:"channels,omitempty"`
	}{Channels: channels})
	if err != nil {
		return err
	}
	return websocket.JSON.Send(f.conn, feedFrame{Type: frameType, Payload: payload})
}

func (f *RealtimeFeed) readLoop() {
	for {
		var frame feedFrame
		if err := websocket.JSON.Receive(f.conn, &frame); err != nil {
			return
		}
		f.handleFrame(frame)
	}
}

func (f *RealtimeFeed) handleFrame(frame feedFrame) {
	switch frame.Type {
	case "feed.event":
		var event models.Activity
		if err := json.Unmarshal(frame.Payload, &event); err != nil {
			return
		}
		f.apply(event)
	case "feed.toast":
		var toast models.Toast
		if err := json.Unmarshal(frame.Payload, &toast); err != nil {
			return
		}
		f.mu.Lock()
		closed := f.closed
		f.mu.Unlock()
		if closed {
			return
		}
		select {
		case f.toasts <- toast:
		default:
		}
	}
	// feed.subscribed, pong and feed.error carry no list state; ignored.
}

// apply prepends an event and trims the list to the bound.
func (f *RealtimeFeed) apply(event models.Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.entries = append([]models.Activity{event}, f.entries...)
	if len(f.entries) > f.max {
		f.entries = f.entries[:f.max]
	}
}
