package websocket

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestClient(hub *Hub, userID primitive.ObjectID, buffer int) *Client {
	return &Client{
		hub:    hub,
		send:   make(chan []byte, buffer),
		UserID: userID,
		rooms:  make(map[string]bool),
	}
}

func chatIDFor(a, b primitive.ObjectID) string {
	first, second := a.Hex(), b.Hex()
	if second < first {
		first, second = second, first
	}
	return first + "_" + second
}

func clientFrame(t *testing.T, msgType, chatID string) []byte {
	t.Helper()
	frame, err := json.Marshal(Message{
		Type: msgType,
		Data: map[string]interface{}{"chat_id": chatID},
	})
	require.NoError(t, err)
	return frame
}

func TestJoinChatRejectsNonParticipant(t *testing.T) {
	hub := NewHub()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	chatID := chatIDFor(alice, bob)

	outsider := newTestClient(hub, primitive.NewObjectID(), 4)
	outsider.handleMessage(clientFrame(t, "join_chat", chatID))

	hub.SendToChat(chatID, Message{
		Type: "chat_message",
		Data: map[string]interface{}{"content": "between alice and bob"},
	})

	select {
	case frame := <-outsider.send:
		t.Fatalf("non-participant received chat traffic: %s", frame)
	default:
	}
}

func TestJoinChatAdmitsParticipant(t *testing.T) {
	hub := NewHub()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	chatID := chatIDFor(alice, bob)

	member := newTestClient(hub, alice, 4)
	member.handleMessage(clientFrame(t, "join_chat", chatID))

	hub.SendToChat(chatID, Message{
		Type: "chat_message",
		Data: map[string]interface{}{"content": "hello"},
	})

	select {
	case frame := <-member.send:
		assert.Contains(t, string(frame), "hello")
	default:
		t.Fatal("participant did not receive chat traffic")
	}
}

func TestTypingRelayRequiresMembership(t *testing.T) {
	hub := NewHub()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	chatID := chatIDFor(alice, bob)

	member := newTestClient(hub, alice, 4)
	member.handleMessage(clientFrame(t, "join_chat", chatID))

	outsider := newTestClient(hub, primitive.NewObjectID(), 4)
	outsider.handleMessage(clientFrame(t, "typing", chatID))

	select {
	case frame := <-member.send:
		t.Fatalf("typing relay from non-participant went through: %s", frame)
	default:
	}

	peer := newTestClient(hub, bob, 4)
	peer.handleMessage(clientFrame(t, "typing", chatID))

	select {
	case frame := <-member.send:
		assert.Contains(t, string(frame), "typing")
	default:
		t.Fatal("typing relay from participant was dropped")
	}
}

func TestMemberOfChat(t *testing.T) {
	hub := NewHub()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	client := newTestClient(hub, alice, 1)

	assert.True(t, client.memberOfChat(chatIDFor(alice, bob)))
	assert.False(t, client.memberOfChat(chatIDFor(bob, primitive.NewObjectID())))
	assert.False(t, client.memberOfChat("not-a-chat-id"))
	assert.False(t, client.memberOfChat(alice.Hex()))
}

// Concurrent fan-outs hitting a client with a full buffer must not touch
// the hub maps outside the hub loop. The slow client is dropped through
// the unregister path instead.
func TestFanOutDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := primitive.NewObjectID()
	slow := newTestClient(hub, userID, 1)
	hub.register <- slow

	// The welcome frame fills the one-slot buffer.
	require.Eventually(t, func() bool {
		return hub.IsUserConnected(userID)
	}, time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				hub.SendToUser(userID, Message{Type: "booking_updated"})
			}
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return !hub.IsUserConnected(userID)
	}, time.Second, 5*time.Millisecond)
}
