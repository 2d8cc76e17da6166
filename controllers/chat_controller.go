package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"health-tracker-backend/middleware"
	"health-tracker-backend/models"
	"health-tracker-backend/services"
)

type ChatController struct {
	engine  *services.EngineService
	records services.RecordRepository
}

func NewChatController(engine *services.EngineService, records services.RecordRepository) *ChatController {
	return &ChatController{
		engine:  engine,
		records: records,
	}
}

// HandleChat processes one conversational turn
func (cc *ChatController) HandleChat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	// A verified identity always wins over whatever the body claims.
	if userID := c.GetString(middleware.UserIDKey); userID != "" {
		req.UserID = userID
	}
	if req.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User identity required",
		})
		return
	}

	response, err := cc.engine.ProcessMessage(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to process message",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRecords returns the caller's saved health records, newest first
func (cc *ChatController) GetRecords(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		userID = c.Query("user_id")
	}
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User identity required",
		})
		return
	}

	limit := int64(50)
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l > 0 {
			limit = l
		}
	}

	records, err := cc.records.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve records",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"count":   len(records),
	})
}

// GetSupportedIntents returns list of supported intents
func (cc *ChatController) GetSupportedIntents(c *gin.Context) {
	intents := []map[string]interface{}{
		{
			"intent":      "symptom",
			"description": "Log a symptom with severity, duration and location",
			"examples": []string{
				"I have a headache",
				"My back has been hurting for two days",
			},
		},
		{
			"intent":      "treatment",
			"description": "Track a medication or treatment",
			"examples": []string{
				"I started taking ibuprofen 400 mg",
				"Log my medication",
			},
		},
		{
			"intent":      "appointment",
			"description": "Note an upcoming doctor appointment",
			"examples": []string{
				"Book an appointment with Dr. Lee",
				"I have a checkup tomorrow at 3pm",
			},
		},
		{
			"intent":      "general_question",
			"description": "General health questions answered from the knowledge base",
			"examples": []string{
				"What is a migraine?",
				"Is it normal to feel dizzy after exercise?",
			},
		},
		{
			"intent":      "emergency",
			"description": "Critical-symptom language triggers an immediate safety response",
			"examples": []string{
				"Severe chest pain",
				"Can't breathe properly",
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"intents": intents,
	})
}
