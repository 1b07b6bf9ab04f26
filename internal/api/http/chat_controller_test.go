package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/axenix_chat/internal/domain"
	"github.com/immxrtalbeast/axenix_chat/internal/registry"
	"github.com/immxrtalbeast/axenix_chat/internal/repository"
	"github.com/immxrtalbeast/axenix_chat/internal/service"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, sharedSecret string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewChatService(
		registry.NewRegistry(),
		service.NewHub(log),
		repository.NewInMemoryTranscriptRepository(),
		100,
		log,
	)
	controller := NewChatController(svc, 32, log)
	srv := httptest.NewServer(SetupRouter(controller, sharedSecret))
	t.Cleanup(srv.Close)
	return srv
}

func dialChat(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var event domain.Event
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func joinAs(t *testing.T, conn *websocket.Conn, name string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(domain.InboundMessage{Type: domain.InboundJoinChat, Name: name}))
}

func Test_Websocket_Join_And_Message_Flow(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "")

	alice := dialChat(t, srv, "")
	req.Equal(domain.EventLoadMessages, readEvent(t, alice).Type)

	joinAs(t, alice, "alice")
	req.Equal(domain.EventUserJoined, readEvent(t, alice).Type)
	req.Equal(domain.EventCurrentUsers, readEvent(t, alice).Type)

	ack := readEvent(t, alice)
	req.Equal(domain.EventJoinAck, ack.Type)
	req.Equal(true, ack.Payload["success"])

	bob := dialChat(t, srv, "")
	req.Equal(domain.EventLoadMessages, readEvent(t, bob).Type)

	joinAs(t, bob, "bob")
	req.Equal(domain.EventUserJoined, readEvent(t, bob).Type)
	roster := readEvent(t, bob)
	req.Equal(domain.EventCurrentUsers, roster.Type)
	req.Equal(domain.EventJoinAck, readEvent(t, bob).Type)

	req.NoError(alice.WriteJSON(domain.InboundMessage{Type: domain.InboundSendMessage, Message: "hi"}))

	// Alice still has Bob's join fanout queued ahead of the message.
	req.Equal(domain.EventUserJoined, readEvent(t, alice).Type)
	req.Equal(domain.EventCurrentUsers, readEvent(t, alice).Type)

	for _, conn := range []*websocket.Conn{alice, bob} {
		received := readEvent(t, conn)
		req.Equal(domain.EventReceiveMessage, received.Type)
		req.Equal("Alice", received.Payload["username"])
		req.Equal("hi", received.Payload["message"])
	}
}

func Test_Websocket_Send_Before_Join_Gets_Error(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "")

	conn := dialChat(t, srv, "")
	req.Equal(domain.EventLoadMessages, readEvent(t, conn).Type)

	req.NoError(conn.WriteJSON(domain.InboundMessage{Type: domain.InboundSendMessage, Message: "hi"}))

	event := readEvent(t, conn)
	req.Equal(domain.EventErrorMessage, event.Type)
	req.Equal("You need to join the chat first.", event.Payload["message"])
}

func Test_Shared_Secret_Gate(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "s3cret")

	resp, err := http.Get(srv.URL + "/api/chat/participants")
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	request, err := http.NewRequest(http.MethodGet, srv.URL+"/api/chat/participants", nil)
	req.NoError(err)
	request.Header.Set("X-Chat-Secret", "s3cret")

	resp, err = http.DefaultClient.Do(request)
	req.NoError(err)
	resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)

	// The websocket entry point sits behind the same gate.
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/chat/ws"
	_, _, err = websocket.DefaultDialer.Dial(wsURL, nil)
	req.Error(err)

	conn := dialChat(t, srv, "?secret=s3cret")
	req.Equal(domain.EventLoadMessages, readEvent(t, conn).Type)
}

func Test_Healthz(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "")

	resp, err := http.Get(srv.URL + "/healthz")
	req.NoError(err)
	defer resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
}
