package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-learning-be/internal/dto"
	"ai-learning-be/internal/pkg/serverutils"
	"ai-learning-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// streamTimeout bounds a single chat completion stream.
const streamTimeout = 2 * time.Minute

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/learning/v1")
	h.Post("chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The fiber context dies when this handler returns, but the stream
	// writer runs after that. Retrieval and streaming get a detached
	// context so the stream can outlive the handler.
	streamCtx, cancel := context.WithTimeout(context.Background(), streamTimeout)

	deltas, err := c.chatService.StreamChat(streamCtx, &req)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		for delta := range deltas {
			if delta.Err != nil {
				writeEvent(w, dto.StreamToken{Error: delta.Err.Error()})
				break
			}
			if err := writeEvent(w, dto.StreamToken{Token: delta.Token}); err != nil {
				// Client went away, abandon the stream.
				return
			}
		}

		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

func writeEvent(w *bufio.Writer, event dto.StreamToken) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
