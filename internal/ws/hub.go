// Package ws difunde los eventos del ledger a los clientes conectados al
// websocket del dashboard.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/rs/zerolog"

	"inventario-pos/internal/application/ledger"
)

// Hub mantiene el conjunto de conexiones y reparte los mensajes.
type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        zerolog.Logger
}

// NewHub construye el hub. Llamar Run en una goroutine antes de usarlo.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		log:        log,
	}
}

// Run atiende registros, bajas y difusión hasta que el proceso termina.
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug().Msg("cliente websocket conectado")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

var _ ledger.EventPublisher = (*Publisher)(nil)

// Publisher adapta el hub al puerto EventPublisher del ledger.
type Publisher struct {
	hub *Hub
	log zerolog.Logger
}

// NewPublisher construye el adaptador.
func NewPublisher(hub *Hub, log zerolog.Logger) *Publisher {
	return &Publisher{hub: hub, log: log}
}

// PublishMovement serializa el evento y lo difunde. Si el canal está lleno el
// evento se descarta: el dashboard se reconcilia en la siguiente consulta.
func (p *Publisher) PublishMovement(ev ledger.MovementEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error().Err(err).Msg("serializar evento de movimiento")
		return
	}
	select {
	case p.hub.Broadcast <- payload:
	default:
		p.log.Warn().Msg("difusión saturada, evento descartado")
	}
}
