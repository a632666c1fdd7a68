package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"inventario-pos/internal/application/dto"
	"inventario-pos/internal/application/pos"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/infrastructure/pdf"
	"inventario-pos/pkg/validator"
)

// POSHandler maneja el checkout del punto de venta y sus tickets (protegido).
type POSHandler struct {
	uc      *pos.CheckoutUseCase
	receipt *pdf.ReceiptGenerator
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *pos.CheckoutUseCase, receipt *pdf.ReceiptGenerator) *POSHandler {
	return &POSHandler{uc: uc, receipt: receipt}
}

// Checkout cobra un carrito. Las cantidades se recortan al stock disponible.
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validator.Describe(errs)})
	}

	lines := make([]pos.CartLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, pos.CartLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	sale, err := h.uc.Checkout(c.Context(), pos.CheckoutInput{
		Lines:         lines,
		PaymentMethod: in.PaymentMethod,
		CashReceived:  in.CashReceived,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return h.mapCheckoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// GetSale devuelve una venta con sus líneas.
func (h *POSHandler) GetSale(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if sale == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(toSaleResponse(sale))
}

// GetReceipt genera el ticket PDF de una venta.
func (h *POSHandler) GetReceipt(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if sale == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}

	data, err := h.receipt.GenerateSaleReceipt(sale)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="ticket-`+sale.ID+`.pdf"`)
	return c.Send(data)
}

func (h *POSHandler) mapCheckoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: "el carrito no tiene líneas cobrables"})
	case errors.Is(err, domain.ErrInsufficientCash):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_CASH", Message: "el efectivo recibido no cubre el total"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for i := range s.Items {
		it := s.Items[i]
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		})
	}
	return dto.SaleResponse{
		ID:            s.ID,
		Items:         items,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CashReceived:  s.CashReceived,
		Change:        s.Change,
		UserID:        s.UserID,
		CreatedAt:     s.CreatedAt,
	}
}
