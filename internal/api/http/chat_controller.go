package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/axenix_chat/internal/api/http/converter"
	"github.com/immxrtalbeast/axenix_chat/internal/domain"
	"github.com/immxrtalbeast/axenix_chat/internal/service"
	"github.com/immxrtalbeast/axenix_chat/lib/logger/sl"
)

type ChatController struct {
	chat        service.ChatInteractor
	log         *slog.Logger
	eventBuffer int
	upgrader    websocket.Upgrader
}

func NewChatController(chat service.ChatInteractor, eventBuffer int, log *slog.Logger) *ChatController {
	if log == nil {
		log = slog.Default()
	}
	return &ChatController{
		chat:        chat,
		log:         log,
		eventBuffer: eventBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *ChatController) Participants(ctx *gin.Context) {
	participants := c.chat.Participants()
	ctx.JSON(http.StatusOK, gin.H{"participants": converter.ParticipantsToApi(participants)})
}

func (c *ChatController) History(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := c.chat.History(ctx.Request.Context(), limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"messages": converter.MessagesToApi(messages)})
}

// Serve upgrades the request and runs the connection against the room until
// the socket closes. All outbound frames go through the client's event
// channel and a single writer goroutine; the read loop only feeds inbound
// frames to the service.
func (c *ChatController) Serve(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	client := domain.NewClient(c.eventBuffer)
	c.chat.Connect(context.Background(), client)

	go forwardClientEvents(client, conn)

	defer func() {
		c.chat.Disconnect(client)
		conn.Close()
	}()

	for {
		var inbound domain.InboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case domain.InboundJoinChat:
			ack, err := c.chat.Join(context.Background(), client, inbound.Name)
			if err != nil {
				c.log.Debug("join refused", slog.String("client_id", client.ID), sl.Err(err))
			}
			client.EnqueueEvent(domain.Event{
				Type: domain.EventJoinAck,
				Payload: map[string]any{
					"success": ack.Success,
					"message": ack.Message,
				},
			})
		case domain.InboundSendMessage:
			if err := c.chat.Send(context.Background(), client, &inbound); err != nil {
				client.EnqueueEvent(domain.Event{
					Type:    domain.EventErrorMessage,
					Payload: map[string]any{"message": "You need to join the chat first."},
				})
			}
		default:
			client.EnqueueEvent(domain.Event{
				Type:    domain.EventErrorMessage,
				Payload: map[string]any{"message": "Unsupported message type: " + inbound.Type},
			})
		}
	}
}

func forwardClientEvents(client *domain.Client, conn *websocket.Conn) {
	for event := range client.Events {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}
