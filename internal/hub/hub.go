package hub

import (
	"encoding/json"
	"log"
	"sync"

	"facit-game/internal/models"
)

// Client is one connected player. ID doubles as the player id for the
// lifetime of the connection.
type Client struct {
	ID     string
	RoomID string
	Send   chan []byte
}

func NewClient(id string) *Client {
	return &Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

// Hub tracks connected clients and their room membership, and delivers
// events to one player or to a whole room. Delivery is best effort: a slow
// or gone client just misses the message.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client            // player id → client
	rooms   map[string]map[string]*Client // room id → player id → client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.clients[client.ID]; ok && existing != client {
		close(existing.Send)
	}
	h.clients[client.ID] = client
	log.Printf("Player connection %s registered (%d connected)", client.ID, len(h.clients))
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(client)
	if current, ok := h.clients[client.ID]; ok && current == client {
		delete(h.clients, client.ID)
		close(client.Send)
	}
	log.Printf("Player connection %s unregistered (%d connected)", client.ID, len(h.clients))
}

func (h *Hub) JoinRoom(client *Client, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(client)
	members, ok := h.rooms[roomID]
	if !ok {
		members = make(map[string]*Client)
		h.rooms[roomID] = members
	}
	members[client.ID] = client
	client.RoomID = roomID
}

func (h *Hub) LeaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoom(client)
}

func (h *Hub) removeFromRoom(client *Client) {
	if client.RoomID == "" {
		return
	}
	if members, ok := h.rooms[client.RoomID]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.rooms, client.RoomID)
		}
	}
	client.RoomID = ""
}

// ToPlayer delivers an event to a single player.
func (h *Hub) ToPlayer(playerID string, event models.GameEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	client, ok := h.clients[playerID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.send(client, data)
}

// ToRoom delivers an event to every member of a room.
func (h *Hub) ToRoom(roomID string, event models.GameEvent) {
	h.toRoom(roomID, "", event)
}

// ToRoomExcept delivers an event to every member of a room except one,
// typically the player the event is about.
func (h *Hub) ToRoomExcept(roomID, exceptID string, event models.GameEvent) {
	h.toRoom(roomID, exceptID, event)
}

func (h *Hub) toRoom(roomID, exceptID string, event models.GameEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[roomID]))
	for id, client := range h.rooms[roomID] {
		if id == exceptID {
			continue
		}
		members = append(members, client)
	}
	h.mu.RUnlock()

	for _, client := range members {
		h.send(client, data)
	}
}

func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		log.Printf("Client %s send buffer full, dropping message", client.ID)
	}
}
