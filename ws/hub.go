package ws

// Hub menyimpan koneksi client dan mem-broadcast event billing
// ke seluruh client yang terhubung.

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var (
	ErrHubClosed = errors.New("websocket hub sudah berhenti")
	ErrHubBusy   = errors.New("antrian broadcast penuh")
)

// Event adalah pesan yang dikirim ke client.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client mewakili koneksi WebSocket
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{ID: uuid.NewString(), Conn: conn, Send: make(chan []byte, 256)}
}

// Hub mengelola semua koneksi client
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int32
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// ClientCount mengembalikan jumlah client yang sedang terdaftar.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish mengirim event ke semua client. Tidak pernah memblok.
func (h *Hub) Publish(event string, payload interface{}) error {
	msg, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- msg:
		return nil
	default:
		return ErrHubBusy
	}
}

func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
		h.count.Add(-1)
	}
}

// Run memproses registrasi dan broadcast sampai ctx selesai.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for client := range h.clients {
			h.remove(client)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Add(1)
			h.log.Debug().Str("client_id", client.ID).Msg("client websocket terdaftar")
		case client := <-h.unregister:
			h.remove(client)
			h.log.Debug().Str("client_id", client.ID).Msg("client websocket terputus")
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					h.log.Warn().Str("client_id", client.ID).Msg("client websocket lambat, koneksi diputus")
					h.remove(client)
				}
			}
		}
	}
}
