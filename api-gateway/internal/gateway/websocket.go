package gateway

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	dialer = websocket.DefaultDialer
)

// ProxyWebSocket relays a live view between the browser and order-svc. The
// upstream connection is opened first so a refused subscription (bad token,
// unknown order) reaches the client as a plain HTTP status.
func (g *Gateway) ProxyWebSocket(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := toWebSocketURL(targetURL) + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	log.Printf("PROXY WS: %s -> %s", r.URL.Path, url)

	header := http.Header{}
	header.Set("X-Forwarded-For", forwardedFor(r))

	upstream, resp, err := dialer.DialContext(r.Context(), url, header)
	if err != nil {
		status := http.StatusBadGateway
		if resp != nil {
			status = resp.StatusCode
		}
		log.Printf("ERROR: Failed to dial %s: %v", url, err)
		http.Error(w, http.StatusText(status), status)
		return
	}
	defer upstream.Close()

	client, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR: websocket upgrade failed: %v", err)
		return
	}
	defer client.Close()

	errc := make(chan error, 2)
	go pump(upstream, client, errc)
	go pump(client, upstream, errc)
	if err := <-errc; err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Printf("PROXY WS: %s closed: %v", r.URL.Path, err)
	}
}

func pump(dst, src *websocket.Conn, errc chan<- error) {
	for {
		kind, data, err := src.ReadMessage()
		if err != nil {
			if ce, ok := err.(*websocket.CloseError); ok {
				dst.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(ce.Code, ce.Text))
			}
			errc <- err
			return
		}
		if err := dst.WriteMessage(kind, data); err != nil {
			errc <- err
			return
		}
	}
}

func toWebSocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
