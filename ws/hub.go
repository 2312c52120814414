package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Rooms         map[string]map[*websocket.Conn]*Client // Phòng chat theo từng courseID
	GlobalClients map[*websocket.Conn]*Client            // Dành cho broadcast chung
	Mutex         sync.RWMutex
}

var H = Hub{
	Rooms:         make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// Một tin nhắn chat trong phòng của khóa học
type ChatMessage struct {
	CourseID string    `json:"course_id"`
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
}

// Register vào phòng theo courseID riêng
func (h *Hub) Register(courseID string, conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Rooms[courseID]; !ok {
		h.Rooms[courseID] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Rooms[courseID][conn] = client

	go h.writePump(client)
	return client
}

// Register global cho trang danh sách khóa học
func (h *Hub) RegisterGlobal(conn *websocket.Conn) *Client {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.GlobalClients[conn] = client

	go h.writePump(client)
	return client
}

// Broadcast cho cả phòng theo courseID
func (h *Hub) Broadcast(courseID string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Rooms[courseID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// Broadcast toàn bộ global clients (danh sách)
func (h *Hub) BroadcastGlobal(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendChatMessage phát một tin nhắn cho cả phòng của khóa học
func SendChatMessage(msg ChatMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(msg.CourseID, data)
}

// BroadcastCourseListChanged gửi signal cập nhật danh sách khóa học
func BroadcastCourseListChanged() {
	data := []byte(`{"type": "course_list_changed"}`)
	H.BroadcastGlobal(data)
}

// Unregister client khỏi phòng theo courseID
func (h *Hub) Unregister(courseID string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Rooms[courseID]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Rooms, courseID)
		}
	}
}

// Unregister global client
func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// writePump đẩy message từ channel Send xuống connection
func (h *Hub) writePump(client *Client) {
	defer func() {
		client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.Conn.Close()
	}()
	for msg := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
