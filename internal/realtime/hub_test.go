package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taste-fun/tf-indexer/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	m.Run()
}

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// startHubServer exposes a hub behind an httptest websocket endpoint.
func startHubServer(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.HandleConnection(conn)
	}))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dialHub(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub, url := startHubServer(t)

	connA := dialHub(t, url)
	connB := dialHub(t, url)
	waitForClients(t, hub, 2)

	msg, err := NewMessage(MessageVoteNew, VotePayload{
		IdeaKey:     "IdeaKey1111111111111111111111111111111111111",
		Voter:       "Voter111111111111111111111111111111111111111",
		ImageChoice: 1,
		StakeAmount: 5_000_000,
		VoteWeight:  2236,
	})
	require.NoError(t, err)
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	hub.Broadcast(data)

	for _, conn := range []*websocket.Conn{connA, connB} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, received, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope Message
		require.NoError(t, json.Unmarshal(received, &envelope))
		assert.Equal(t, MessageVoteNew, envelope.Type)
		assert.NotEmpty(t, envelope.ID)

		var payload VotePayload
		require.NoError(t, json.Unmarshal(envelope.Data, &payload))
		assert.Equal(t, uint8(1), payload.ImageChoice)
	}
}

func TestHubRemovesDisconnectedClients(t *testing.T) {
	hub, url := startHubServer(t)

	conn := dialHub(t, url)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// Broadcasting into an empty hub is a no-op
	hub.Broadcast([]byte(`{"type":"stats:global"}`))
}

func TestHubDropsSlowClients(t *testing.T) {
	hub, url := startHubServer(t)

	// This client never reads; once its queue is full the hub must cut
	// it loose instead of blocking the broadcast path.
	dialHub(t, url)
	waitForClients(t, hub, 1)

	// Large frames so the kernel socket buffers fill quickly and the
	// write pump actually blocks.
	payload := append([]byte(`{"type":"token:swap","data":"`), make([]byte, 64*1024)...)
	for i := range payload[30:] {
		payload[30+i] = 'x'
	}
	payload = append(payload, '"', '}')
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < sendBuffer*4; i++ {
			hub.Broadcast(payload)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
	waitForClients(t, hub, 0)
}

func TestSubjectForMessageTypes(t *testing.T) {
	assert.Equal(t, "realtime.vote:new", SubjectFor(MessageVoteNew))
	assert.Equal(t, "realtime.idea:update:status", SubjectFor(MessageIdeaStatus))
	assert.Equal(t, "realtime.>", SubjectWildcard)
}

func TestNewMessageIDsAreSortable(t *testing.T) {
	a, err := NewMessage(MessageStatsGlobal, map[string]int{"totalIdeas": 1})
	require.NoError(t, err)
	b, err := NewMessage(MessageStatsGlobal, map[string]int{"totalIdeas": 2})
	require.NoError(t, err)

	assert.True(t, a.ID < b.ID, "ULIDs from the same source are monotonic")
}
