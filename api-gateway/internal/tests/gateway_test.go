package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableside/api-gateway/internal/gateway"
	"tableside/api-gateway/internal/mocks"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

func requestTo(url string) interface{} {
	return mock.MatchedBy(func(req *http.Request) bool { return req.URL.String() == url })
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Upstreams(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		wantURL string
	}{
		{
			name:    "analytics",
			method:  http.MethodGet,
			path:    "/api/analytics/daily?date=2026-03-02",
			wantURL: "http://analytics-svc/api/analytics/daily?date=2026-03-02",
		},
		{
			name:    "order creation",
			method:  http.MethodPost,
			path:    "/api/orders",
			wantURL: "http://order-svc/api/orders",
		},
		{
			name:    "kitchen board",
			method:  http.MethodGet,
			path:    "/api/kitchen/orders",
			wantURL: "http://order-svc/api/kitchen/orders",
		},
		{
			name:    "dish image",
			method:  http.MethodGet,
			path:    "/uploads/burger.png",
			wantURL: "http://order-svc/uploads/burger.png",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{
				OrderSvcURL:     "http://order-svc",
				AnalyticsSvcURL: "http://analytics-svc",
			}, mockClient)

			mockClient.On("Do", requestTo(testCase.wantURL)).Return(jsonResponse(http.StatusOK, `{"ok":true}`), nil).Once()

			req := httptest.NewRequest(testCase.method, testCase.path, nil)
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
		})
	}
}

func TestGateway_ProxyRequest_ForwardsClientAddress(t *testing.T) {
	tests := []struct {
		name   string
		forged []string
	}{
		{name: "no header"},
		{name: "forged header", forged: []string{"198.51.100.23"}},
		{name: "forged chain", forged: []string{"198.51.100.23, 10.0.0.9", "127.0.0.1"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(gateway.Config{OrderSvcURL: "http://order-svc"}, mockClient)

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return assert.ObjectsAreEqual([]string{"192.0.2.7"}, req.Header.Values("X-Forwarded-For")) &&
					req.Header.Get("Content-Type") == "application/json"
			})).Return(jsonResponse(http.StatusUnauthorized, `{"error":"invalid PIN"}`), nil).Once()

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"pin":"0000"}`))
			req.RemoteAddr = "192.0.2.7:53211"
			req.Header.Set("Content-Type", "application/json")
			for _, value := range testCase.forged {
				req.Header.Add("X-Forwarded-For", value)
			}
			rr := httptest.NewRecorder()

			gw.RouteHandler(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestGateway_ProxyRequest_DropsUpstreamCORS(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{OrderSvcURL: "http://order-svc"}, mockClient)

	resp := jsonResponse(http.StatusOK, `[]`)
	resp.Header.Set("Access-Control-Allow-Origin", "*")
	mockClient.On("Do", mock.Anything).Return(resp, nil).Once()

	rr := httptest.NewRecorder()
	gw.RouteHandler(rr, httptest.NewRequest(http.MethodGet, "/api/dishes", nil))

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{
		OrderSvcURL: "http://invalid",
	}, mockClient)

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/dishes", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection failed")
}

func TestGateway_ServeFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('menu')"), 0o644))

	gw := gateway.NewGateway(gateway.Config{FrontendDir: dir}, nil)
	router := gw.SetupRoutes()

	tests := []struct {
		name     string
		path     string
		wantBody string
	}{
		{name: "asset", path: "/app.js", wantBody: "console.log('menu')"},
		{name: "static prefix", path: "/static/app.js", wantBody: "console.log('menu')"},
		{name: "client route", path: "/table/4", wantBody: "<html>app</html>"},
		{name: "root", path: "/", wantBody: "<html>app</html>"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, testCase.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, testCase.wantBody, rr.Body.String())
		})
	}
}

func TestGateway_ProxyWebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	forwarded := make(chan []string, 4)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded <- r.Header.Values("X-Forwarded-For")
		if r.URL.Path != "/ws/orders/abc" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"pending"}`))
		for {
			kind, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			conn.WriteMessage(kind, append([]byte("echo:"), data...))
		}
	}))
	defer upstream.Close()

	gw := gateway.NewGateway(gateway.Config{OrderSvcURL: upstream.URL}, nil)
	front := httptest.NewServer(gw.SetupRoutes())
	defer front.Close()

	wsURL := "ws" + strings.TrimPrefix(front.URL, "http")

	t.Run("relays both directions", func(t *testing.T) {
		header := http.Header{}
		header.Set("X-Forwarded-For", "198.51.100.23")
		conn, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws/orders/abc", header)
		require.NoError(t, err)
		defer conn.Close()
		assert.Equal(t, []string{"127.0.0.1"}, <-forwarded)
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))

		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"pending"}`, string(data))

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("ping")))
		_, data, err = conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "echo:ping", string(data))
	})

	t.Run("upstream refusal keeps its status", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL+"/ws/orders/missing", nil)
		<-forwarded
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
