package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"health-tracker-backend/middleware"
	"health-tracker-backend/models"
	"health-tracker-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Configure properly for production
	},
}

type WebSocketController struct {
	engine *services.EngineService
}

func NewWebSocketController(engine *services.EngineService) *WebSocketController {
	return &WebSocketController{
		engine: engine,
	}
}

// HandleWebSocket runs the chat contract over a websocket. Each incoming
// frame is one utterance; turn ordering per user is enforced by the engine.
func (wc *WebSocketController) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	authedUser := c.GetString(middleware.UserIDKey)

	for {
		var msg map[string]string
		err := conn.ReadJSON(&msg)
		if err != nil {
			log.Println("Read error:", err)
			break
		}

		req := models.ChatRequest{
			Message: msg["message"],
			UserID:  authedUser,
		}
		if req.UserID == "" {
			req.UserID = msg["user_id"]
		}

		response, err := wc.engine.ProcessMessage(c.Request.Context(), req)
		if err != nil {
			conn.WriteJSON(map[string]interface{}{
				"error": "Failed to process message",
			})
			continue
		}

		conn.WriteJSON(response)
	}
}
