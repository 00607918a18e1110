package ai

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nabh/nabh/internal/platform/auth"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "quality"))
	g.POST("/ai/generate", h.Generate)
}

func (h *Handler) Generate(c echo.Context) error {
	if !h.client.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "ai generation is not configured")
	}
	var req GenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt is required")
	}
	if len(req.Prompt) > maxPromptLen {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt too long")
	}
	resp, err := h.client.Generate(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}
