// Package realtime carries projection deltas from the indexer to
// connected clients: NATS core subjects between processes, a websocket
// hub at the edge. Delivery is best-effort; the projection is the
// source of truth and clients re-read it on reconnect.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// MessageType tags one wire message.
type MessageType string

const (
	// MessageIdeaNew announces a freshly created idea
	MessageIdeaNew MessageType = "idea:new"
	// MessageIdeaStatus announces an idea lifecycle transition
	MessageIdeaStatus MessageType = "idea:update:status"
	// MessageIdeaStats announces updated vote counters on an idea
	MessageIdeaStats MessageType = "idea:update:stats"
	// MessageVoteNew announces a cast or updated vote
	MessageVoteNew MessageType = "vote:new"
	// MessageStatsGlobal announces refreshed projection-wide aggregates
	MessageStatsGlobal MessageType = "stats:global"
	// MessageThemeNew announces a freshly created theme
	MessageThemeNew MessageType = "theme:new"
	// MessageTokenSwap announces a bonding-curve trade
	MessageTokenSwap MessageType = "token:swap"
	// MessageTokenBuyback announces a buyback burn
	MessageTokenBuyback MessageType = "token:buyback"
)

// Message is the wire envelope sent to clients verbatim.
type Message struct {
	// ID is a time-sortable unique message ID
	ID string `json:"id"`
	// Type tags the payload
	Type MessageType `json:"type"`
	// Data is the type-specific payload
	Data json.RawMessage `json:"data"`
}

// subjectPrefix scopes the NATS subjects carrying realtime messages.
const subjectPrefix = "realtime"

// SubjectFor returns the NATS subject a message type travels on,
// e.g. realtime.vote:new.
func SubjectFor(t MessageType) string {
	return fmt.Sprintf("%s.%s", subjectPrefix, t)
}

// SubjectWildcard subscribes to every realtime subject.
const SubjectWildcard = subjectPrefix + ".>"

// NewMessage wraps a payload into the wire envelope. Safe for
// concurrent use: the default ULID entropy is a locked monotonic
// reader, and every subscriber goroutine mints IDs through here.
func NewMessage(t MessageType, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", t, err)
	}
	return &Message{
		ID:   ulid.MustNewDefault(time.Now()).String(),
		Type: t,
		Data: data,
	}, nil
}
