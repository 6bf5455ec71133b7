// Package events pushes live table, reservation and shift updates to
// connected staff dashboards over websockets.
package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/dinebook/reservation-app/models"
	"github.com/gorilla/websocket"
)

// Event types
const (
	EventTableCreate       = "table_create"
	EventTableUpdate       = "table_update"
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventShiftUpdate       = "shift_update"
	EventStaffNotif        = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds all connected clients (staff, admin) keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableCreate announces a new table.
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableUpdate announces a table state change.
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastReservationCreate announces a new booking.
func BroadcastReservationCreate(res models.Reservation) {
	broadcast(Message{Event: EventReservationCreate, Data: res})
}

// BroadcastReservationUpdate announces a lifecycle change.
func BroadcastReservationUpdate(res models.Reservation) {
	broadcast(Message{Event: EventReservationUpdate, Data: res})
}

// BroadcastShiftUpdate announces an assignment change.
func BroadcastShiftUpdate(a models.ShiftAssignment) {
	broadcast(Message{Event: EventShiftUpdate, Data: a})
}

// BroadcastStaffNotification sends a plain message to all clients.
func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending %s event to %s client: %v", msg.Event, role, err)
		}
	}
}
