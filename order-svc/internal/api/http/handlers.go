package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tableside/order-svc/internal/domain"
	"tableside/order-svc/internal/notify"
	"tableside/order-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders      service.OrderServiceInterface
	Projections service.ProjectionServiceInterface
	Menu        service.MenuServiceInterface
	Admin       service.AdminServiceInterface
	QR          service.QRGenerator
	Bridge      *notify.Bridge
	UploadDir   string

	// X-Forwarded-For is only read from peers inside these networks.
	TrustedProxies []*net.IPNet
}

// DefaultTrustedProxies covers loopback and private ranges, where the
// gateway runs in a compose or cluster network.
var DefaultTrustedProxies = []string{"127.0.0.0/8", "::1/128", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "fc00::/7"}

func NewHandler(
	orders service.OrderServiceInterface,
	projections service.ProjectionServiceInterface,
	menu service.MenuServiceInterface,
	admin service.AdminServiceInterface,
	qr service.QRGenerator,
	bridge *notify.Bridge,
) *Handler {
	return &Handler{
		Orders:      orders,
		Projections: projections,
		Menu:        menu,
		Admin:       admin,
		QR:          qr,
		Bridge:      bridge,
		UploadDir:   "./uploads",

		TrustedProxies: mustParseCIDRs(DefaultTrustedProxies),
	}
}

// SetTrustedProxies replaces the networks whose X-Forwarded-For is honoured.
// An empty list trusts no proxy.
func (h *Handler) SetTrustedProxies(cidrs []string) error {
	nets, err := parseCIDRs(cidrs)
	if err != nil {
		return err
	}
	h.TrustedProxies = nets
	return nil
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")
	r.HandleFunc("/api/categories", h.getCategories).Methods("GET")
	r.HandleFunc("/api/dishes", h.getDishes).Methods("GET")
	r.HandleFunc("/api/tables/{table}/qrcode", h.getTableQRCode).Methods("GET")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/message", h.setAdditionalMessage).Methods("PUT")

	r.HandleFunc("/api/kitchen/orders", h.getKitchenActive).Methods("GET")
	r.HandleFunc("/api/kitchen/history", h.getKitchenHistory).Methods("GET")
	r.HandleFunc("/api/kitchen/orders/{id}/status", h.updateStatus).Methods("PUT")
	r.HandleFunc("/api/kitchen/archive", h.archiveCompleted).Methods("POST")

	r.HandleFunc("/api/admin/login", h.login).Methods("POST")
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(h.requireSession)
	admin.HandleFunc("/security/unlock", h.unlockSecurity).Methods("POST")
	admin.HandleFunc("/caisse", h.getCaisse).Methods("GET")
	admin.HandleFunc("/caisse/archive", h.archivePaid).Methods("POST")
	admin.HandleFunc("/orders/{id}/paid", h.markPaid).Methods("POST")
	admin.HandleFunc("/settings", h.updateSettings).Methods("PUT")
	admin.HandleFunc("/pins", h.changePIN).Methods("PUT")
	admin.HandleFunc("/categories", h.createCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", h.updateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", h.deleteCategory).Methods("DELETE")
	admin.HandleFunc("/dishes", h.createDish).Methods("POST")
	admin.HandleFunc("/dishes/{id}", h.updateDish).Methods("PUT")
	admin.HandleFunc("/dishes/{id}", h.deleteDish).Methods("DELETE")
	admin.HandleFunc("/dishes/{id}/image", h.uploadDishImage).Methods("POST")

	r.HandleFunc("/ws/kitchen", h.liveKitchen).Methods("GET")
	r.HandleFunc("/ws/caisse", h.liveCaisse).Methods("GET")
	r.HandleFunc("/ws/orders/{id}", h.liveOrder).Methods("GET")

	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))))
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "order-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if h.Bridge != nil {
		response["live_subscribers"] = h.Bridge.Len()
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors to HTTP statuses. Store failures are
// logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[order-svc] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, message, status)
}

func errorStatus(err error) (int, string) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Error()
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrDishNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrStatusConflict),
		errors.Is(err, domain.ErrNotCompleted),
		errors.Is(err, domain.ErrMessageClosed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidPIN),
		errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, errorHead(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error()
	}
	return http.StatusInternalServerError, "something went wrong, please try again"
}

// errorHead keeps only the first line of joined errors so token parsing
// details are not echoed to clients.
func errorHead(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

func pathInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	return id, err == nil && id > 0
}

// clientKey identifies the caller for PIN attempt counting. Forwarded
// addresses count only when the peer is a trusted proxy, and then the
// rightmost untrusted hop wins: entries left of it are client-supplied.
func (h *Handler) clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !h.trusted(host) {
		return host
	}
	fwd := r.Header.Values("X-Forwarded-For")
	hops := strings.Split(strings.Join(fwd, ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if net.ParseIP(hop) == nil {
			break
		}
		host = hop
		if !h.trusted(hop) {
			break
		}
	}
	return host
}

func (h *Handler) trusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range h.TrustedProxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func parseCIDRs(cidrs []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", c, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func mustParseCIDRs(cidrs []string) []*net.IPNet {
	nets, err := parseCIDRs(cidrs)
	if err != nil {
		panic(err)
	}
	return nets
}
