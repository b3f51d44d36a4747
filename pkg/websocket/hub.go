package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex

	// Invoked after the first connection for a user registers and after
	// the last one drops. Wired to the presence writer at startup.
	OnConnect    func(userID primitive.ObjectID)
	OnDisconnect func(userID primitive.ObjectID)
}

type Message struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"room_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()

	h.clients[client] = true

	// Every user gets a personal room for direct events: incoming calls,
	// booking status changes, chat previews.
	personalRoom := "user_" + client.UserID.Hex()
	firstConn := len(h.rooms[personalRoom]) == 0
	h.joinRoom(client, personalRoom)

	h.mutex.Unlock()

	log.Printf("Client registered: %s", client.UserID.Hex())

	if firstConn && h.OnConnect != nil {
		h.OnConnect(client.UserID)
	}

	welcomeMsg := Message{
		Type:      "welcome",
		UserID:    client.UserID,
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}

	h.mutex.Lock()
	h.sendToClient(client, welcomeMsg)
	h.mutex.Unlock()
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()

	lastConn := false
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}

		personalRoom := "user_" + client.UserID.Hex()
		lastConn = len(h.rooms[personalRoom]) == 0

		log.Printf("Client unregistered: %s", client.UserID.Hex())
	}

	h.mutex.Unlock()

	if lastConn && h.OnDisconnect != nil {
		h.OnDisconnect(client.UserID)
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	if msg.RoomID != "" {
		h.sendToRoom(msg.RoomID, msg)
	} else {
		h.sendToAll(msg)
	}
}

func (h *Hub) sendToAll(message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	data, _ := json.Marshal(message)
	for client := range h.clients {
		h.deliver(client, data)
	}
}

func (h *Hub) sendToRoom(roomID string, message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	room, exists := h.rooms[roomID]
	if !exists {
		return
	}

	data, _ := json.Marshal(message)
	for client := range room {
		h.deliver(client, data)
	}
}

func (h *Hub) sendToClient(client *Client, message Message) {
	data, _ := json.Marshal(message)
	h.deliver(client, data)
}

// deliver drops the message when the client's buffer is full and hands the
// client to the unregister path. Fan-outs run concurrently under the read
// lock, so removal must go through the hub loop rather than touch the maps
// here.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) SendToUser(userID primitive.ObjectID, message Message) {
	roomID := "user_" + userID.Hex()
	h.sendToRoom(roomID, message)
}

func (h *Hub) SendToChat(chatID string, message Message) {
	roomID := "chat_" + chatID
	h.sendToRoom(roomID, message)
}

func (h *Hub) IsUserConnected(userID primitive.ObjectID) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.rooms["user_"+userID.Hex()]) > 0
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) JoinChat(client *Client, chatID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.joinRoom(client, "chat_"+chatID)
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
