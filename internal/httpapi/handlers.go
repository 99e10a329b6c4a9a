package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/zephyrtronium/procalc/internal/history"
	"github.com/zephyrtronium/procalc/internal/service"
)

// EvaluateRequest is the body of evaluate and preview requests.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// MemoryRequest is the body of memory operation requests.
type MemoryRequest struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

// MemoryResponse reports the memory register's value.
type MemoryResponse struct {
	Memory string `json:"memory"`
}

// StatusResponse acknowledges a request with no other result.
type StatusResponse struct {
	Status string `json:"status"`
}

type handler struct {
	calc   *service.Calculator
	logger *zap.Logger
}

func (h *handler) evaluate(c *fiber.Ctx) error {
	var req EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	return c.JSON(h.calc.Evaluate(c.UserContext(), req.Expression))
}

func (h *handler) preview(c *fiber.Ctx) error {
	var req EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	return c.JSON(h.calc.Preview(c.UserContext(), req.Expression))
}

func (h *handler) history(c *fiber.Ctx) error {
	entries, err := h.calc.History(c.UserContext())
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	return c.JSON(entries)
}

func (h *handler) clearHistory(c *fiber.Ctx) error {
	if err := h.calc.ClearHistory(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(StatusResponse{Status: service.StatusOK})
}

func (h *handler) memory(c *fiber.Ctx) error {
	return c.JSON(MemoryResponse{Memory: h.calc.Memory().String()})
}

func (h *handler) applyMemory(c *fiber.Ctx) error {
	var req MemoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body: "+err.Error())
	}
	if req.Value == "" {
		req.Value = "0"
	}
	v := h.calc.ApplyMemory(req.Op, req.Value)
	return c.JSON(MemoryResponse{Memory: v.String()})
}

func health(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{Status: service.StatusOK})
}
