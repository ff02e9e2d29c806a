package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/notify"
	"tableside/order-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	GuestPollInterval  = 5 * time.Second
	CaissePollInterval = 15 * time.Second

	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type liveMessage struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type kitchenSnapshot struct {
	Active  []service.OrderView `json:"active"`
	History []service.OrderView `json:"history"`
}

func (h *Handler) liveKitchen(w http.ResponseWriter, r *http.Request) {
	h.serveLive(w, r, notify.Filter{Table: domain.TableOrders}, 0, func(ctx context.Context) (interface{}, error) {
		active, err := h.Projections.KitchenActive(ctx)
		if err != nil {
			return nil, err
		}
		history, err := h.Projections.KitchenHistory(ctx)
		if err != nil {
			return nil, err
		}
		return kitchenSnapshot{Active: active, History: history}, nil
	})
}

// liveCaisse takes the session token as a query parameter because browsers
// cannot set headers on websocket requests.
func (h *Handler) liveCaisse(w http.ResponseWriter, r *http.Request) {
	session, err := h.Admin.ParseSession(r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.serveLive(w, r, notify.Filter{Table: domain.TableOrders}, CaissePollInterval, func(ctx context.Context) (interface{}, error) {
		return h.Projections.Caisse(ctx, session)
	})
}

func (h *Handler) liveOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	h.serveLive(w, r, notify.Filter{Table: domain.TableOrders, OrderID: id}, GuestPollInterval, func(ctx context.Context) (interface{}, error) {
		return h.Projections.GuestStatus(ctx, id)
	})
}

// serveLive pushes a full snapshot after every change notification and
// poll tick until the client goes away. Transient read failures are sent
// as error frames; not found and session errors end the stream.
func (h *Handler) serveLive(w http.ResponseWriter, r *http.Request, filter notify.Filter, interval time.Duration, fetch func(context.Context) (interface{}, error)) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[order-svc] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	sub := h.Bridge.Subscribe(filter, notify.DefaultBuffer)
	err = notify.Watch(ctx, sub, interval, func(ctx context.Context) error {
		snapshot, err := fetch(ctx)
		if err != nil {
			status, message := errorStatus(err)
			if werr := writeLive(conn, liveMessage{Type: "error", Error: message}); werr != nil {
				return werr
			}
			if status == http.StatusInternalServerError {
				log.Printf("[order-svc] live %s refresh failed: %v", r.URL.Path, err)
				return nil
			}
			return err
		}
		return writeLive(conn, liveMessage{Type: "snapshot", Data: snapshot})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	}
}

func writeLive(conn *websocket.Conn, msg liveMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}
