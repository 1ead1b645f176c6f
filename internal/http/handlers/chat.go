package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techserve_ng/backend/internal/chatbot"
	"github.com/techserve_ng/backend/internal/metrics"
)

type ChatRequest struct {
	State   chatbot.State `json:"state"`
	Message string        `json:"message" validate:"required,max=500"`
}

type ChatResponse struct {
	Message chatbot.Message `json:"message"`
	State   chatbot.State   `json:"state"`
	Action  *chatbot.Action `json:"action,omitempty"`
}

type GreetingResponse struct {
	Messages []chatbot.Message `json:"messages"`
	State    chatbot.State     `json:"state"`
}

type CategoryInfo struct {
	Name      chatbot.Category `json:"name"`
	Slug      string           `json:"slug"`
	Questions int              `json:"questions"`
}

// @Summary Assistant greeting
// @Tags chat
// @Produce json
// @Success 200 {object} GreetingResponse
// @Router /api/chat/greeting [get]
func (h *Handler) ChatGreeting(c *gin.Context) {
	c.JSON(http.StatusOK, GreetingResponse{
		Messages: h.Chat.InitialMessages(),
		State:    chatbot.State{Answers: []string{}},
	})
}

// @Summary Run one assistant turn
// @Description Stateless: the client sends back the state it received with the previous reply.
// @Tags chat
// @Accept json
// @Produce json
// @Param payload body ChatRequest true "Turn"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} map[string]any
// @Failure 429 {object} map[string]any
// @Router /api/chat/messages [post]
func (h *Handler) ChatMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required", nil)
		return
	}
	if req.State.Answers == nil {
		req.State.Answers = []string{}
	}

	msg, next := h.Chat.Respond(req.State, req.Message)
	metrics.RecordChatTurn(chatBranch(req.Message, next))

	resp := ChatResponse{Message: msg, State: next}
	if act := chatbot.ActionFor(req.Message, req.State, h.CompanyPhone, h.ContactPageURL); act.Kind != chatbot.ActionNone {
		resp.Action = &act
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Service categories
// @Description Category labels with the catalog slug used by the contact form's service field.
// @Tags chat
// @Produce json
// @Success 200 {array} CategoryInfo
// @Router /api/chat/categories [get]
func (h *Handler) ChatCategories(c *gin.Context) {
	out := make([]CategoryInfo, 0, len(chatbot.Categories))
	for _, cat := range chatbot.Categories {
		f, _ := chatbot.FlowFor(cat)
		out = append(out, CategoryInfo{Name: cat, Slug: f.Slug, Questions: len(f.Questions)})
	}
	c.JSON(http.StatusOK, out)
}

func chatBranch(text string, next chatbot.State) string {
	if chatbot.IsHazardRequest(text) {
		return "refusal"
	}
	return string(next.Category)
}
