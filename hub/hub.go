// Package hub menyiarkan event pesanan dan rekap ke dashboard staff lewat websocket.
package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/geprek-app/utils"
)

// Event types
const (
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderDeleted   = "order.deleted"
	EventMenuUpdated    = "menu.updated"
	EventRecapRequested = "recap.requested"
	EventRecapApproved  = "recap.approved"
	EventRecapRejected  = "recap.rejected"
	EventRecapDeleted   = "recap.deleted"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// DefaultWriteTimeout membatasi lama satu kirim ke satu client
const DefaultWriteTimeout = 5 * time.Second

// Hub menampung semua client dashboard (admin, manager)
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex

	// client yang tidak membaca dalam batas ini diputus
	WriteTimeout time.Duration
}

func New() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string), WriteTimeout: DefaultWriteTimeout}
}

// RegisterClient -> menambahkan connection ke set dengan role
func (h *Hub) RegisterClient(conn *websocket.Conn, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast mengirim ke semua client yang rolenya ada di roles (kosong = semua)
func (h *Hub) Broadcast(msg Message, roles ...string) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, role := range h.clients {
		if !roleAllowed(role, roles) {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(h.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("Error sending %s to %s client: %v", msg.Event, role, err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// AudienceFor: event pesanan & menu untuk admin, event rekap untuk admin dan manager
func AudienceFor(event string) []string {
	switch event {
	case EventRecapRequested, EventRecapApproved, EventRecapRejected, EventRecapDeleted:
		return []string{"admin", "manager"}
	}
	return []string{"admin"}
}

func roleAllowed(role string, roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
