package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/domain"
	"inventario-pos/pkg/validator"
)

// InventoryHandler maneja las peticiones HTTP del ledger de inventario (protegido).
type InventoryHandler struct {
	record  *ledger.RecordMovementUseCase
	queries *ledger.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(record *ledger.RecordMovementUseCase, queries *ledger.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{record: record, queries: queries}
}

// RecordMovement registra una entrada o salida. Si el producto no existe, el
// movimiento queda en el log y la respuesta indica stock_applied=false.
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}

	res, err := h.record.RecordMovement(c.Context(), ledger.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.RecordMovementResponse{
		Movement:     ledger.ToMovementResponse(res.Movement),
		StockApplied: res.Applied,
	}
	if res.Applied {
		stock := res.NewStock
		resp.NewStock = &stock
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListMovements lista el log, más reciente primero. ?product_id= filtra por producto.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}

	list, err := h.queries.ListMovements(c.Query("product_id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// LowStock devuelve los productos bajo umbral en orden de urgencia.
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.queries.LowStock()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}
