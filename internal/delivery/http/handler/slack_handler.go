package handler

import (
	"strings"

	"docqa-api/internal/delivery/http/dto"
	"docqa-api/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type SlackHandler struct {
	docService DocumentService
}

func NewSlackHandler(docService DocumentService) *SlackHandler {
	return &SlackHandler{docService: docService}
}

// Ask godoc
// @Summary      Slack slash command
// @Description  Answer a question sent from a Slack slash command
// @Tags         Slack
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        text  formData  string  true  "Question text"
// @Success      200  {object}  dto.SlackResponse
// @Router       /api/slack/ask [post]
//
// Slack treats any non-200 (or slow) response as a command failure, so this
// endpoint always answers 200; failures become an ephemeral message instead.
func (h *SlackHandler) Ask(c *fiber.Ctx) error {
	question := strings.TrimSpace(c.FormValue("text"))
	if question == "" {
		return c.Status(fiber.StatusOK).JSON(dto.SlackResponse{
			ResponseType: "ephemeral",
			Text:         "Error: please provide a question, e.g. /ask what is the refund policy?",
		})
	}

	answer, _, err := h.docService.Ask(c.Context(), question)
	if err != nil {
		logger.Errorf("slack ask failed: %v", err)
		return c.Status(fiber.StatusOK).JSON(dto.SlackResponse{
			ResponseType: "ephemeral",
			Text:         "Error: " + err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.SlackResponse{
		ResponseType: "in_channel",
		Text:         answer,
	})
}
