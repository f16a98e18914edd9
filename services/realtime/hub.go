package realtime

import (
	"encoding/json"
	"sync"
)

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// wsPeer serializes writes to one connection. The json.Encoder is not safe
// for concurrent use, so every write goes through the mutex.
type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

// maxRecentFrames bounds the per-channel replay buffer. A subscriber that
// attaches moments after a publish still sees what it just missed; anything
// older comes from the REST history endpoints.
const maxRecentFrames = 20

// feedHub tracks which peers listen on which channels and keeps a bounded
// buffer of recent event frames per channel for replay on subscribe.
type feedHub struct {
	mu       sync.Mutex
	channels map[string]map[*wsPeer]struct{}
	recent   map[string][]wsFrame
}

func newFeedHub() *feedHub {
	return &feedHub{
		channels: make(map[string]map[*wsPeer]struct{}),
		recent:   make(map[string][]wsFrame),
	}
}

func (h *feedHub) subscribe(channel string, peer *wsPeer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	peers, ok := h.channels[channel]
	if !ok {
		peers = make(map[*wsPeer]struct{})
		h.channels[channel] = peers
	}
	peers[peer] = struct{}{}
}

func (h *feedHub) unsubscribe(channel string, peer *wsPeer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	peers, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(peers, peer)
	if len(peers) == 0 {
		delete(h.channels, channel)
	}
}

// drop removes the peer from every channel it was on.
func (h *feedHub) drop(peer *wsPeer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for channel, peers := range h.channels {
		delete(peers, peer)
		if len(peers) == 0 {
			delete(h.channels, channel)
		}
	}
}

// peersOn snapshots the channel's subscribers so broadcast writes happen
// outside the hub lock.
func (h *feedHub) peersOn(channel string) []*wsPeer {
	h.mu.Lock()
	defer h.mu.Unlock()

	peers := make([]*wsPeer, 0, len(h.channels[channel]))
	for peer := range h.channels[channel] {
		peers = append(peers, peer)
	}
	return peers
}

func (h *feedHub) broadcast(channel string, frame wsFrame) {
	for _, peer := range h.peersOn(channel) {
		_ = peer.writeFrame(frame)
	}
}

// remember prepends the frame to the channel's replay buffer, most recent
// first, trimmed at maxRecentFrames.
func (h *feedHub) remember(channel string, frame wsFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := append([]wsFrame{frame}, h.recent[channel]...)
	if len(buf) > maxRecentFrames {
		buf = buf[:maxRecentFrames]
	}
	h.recent[channel] = buf
}

// recentOn returns a copy of the channel's replay buffer, most recent first.
func (h *feedHub) recentOn(channel string) []wsFrame {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.recent[channel]
	out := make([]wsFrame, len(buf))
	copy(out, buf)
	return out
}
