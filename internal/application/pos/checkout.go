// Package pos implementa el flujo de caja del punto de venta sobre el ledger:
// el checkout no reserva inventario, solo emite una salida por línea vendida.
package pos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventario-pos/internal/application/ledger"
	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/domain/repository"
)

// TxRunner transacción del checkout: venta + movimientos en un solo commit.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// CheckoutUseCase cobra un carrito: persiste la venta y registra una salida por
// línea con el método de pago en el motivo, todo en la misma transacción.
type CheckoutUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	publisher   ledger.EventPublisher
}

// NewCheckoutUseCase construye el caso de uso. publisher puede ser nil.
func NewCheckoutUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	publisher ledger.EventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		publisher:   publisher,
	}
}

// CartLine línea del carrito tal como llega del POS.
type CartLine struct {
	ProductID string
	Quantity  int64
}

// CheckoutInput entrada del checkout.
type CheckoutInput struct {
	Lines         []CartLine
	PaymentMethod string // efectivo | tarjeta
	CashReceived  decimal.Decimal
	UserID        string
}

// Checkout valida el carrito, recorta cada cantidad a [0, stock] al momento de la
// selección (las líneas recortadas a cero se descartan) y cobra.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, input CheckoutInput) (*entity.Sale, error) {
	if input.PaymentMethod != entity.PaymentEfectivo && input.PaymentMethod != entity.PaymentTarjeta {
		return nil, domain.ErrInvalidInput
	}
	if len(input.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now()
	saleID := uuid.New().String()

	items := make([]entity.SaleItem, 0, len(input.Lines))
	subtotal := decimal.Zero
	for _, line := range input.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// A diferencia del ledger puro, el POS solo vende del catálogo.
			return nil, domain.ErrNotFound
		}
		qty := clamp(line.Quantity, product.Stock)
		if qty == 0 {
			continue
		}
		item := entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      saleID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    qty,
			UnitPrice:   product.Price,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(entity.TaxRate).Round(2)
	total := subtotal.Add(tax)

	sale := &entity.Sale{
		ID:            saleID,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         total,
		PaymentMethod: input.PaymentMethod,
		UserID:        input.UserID,
		CreatedAt:     now,
	}
	if input.PaymentMethod == entity.PaymentEfectivo {
		if input.CashReceived.LessThan(total) {
			return nil, domain.ErrInsufficientCash
		}
		sale.CashReceived = input.CashReceived
		sale.Change = input.CashReceived.Sub(total)
	}

	reason := fmt.Sprintf("Venta POS - Pago con %s", input.PaymentMethod)
	var results []*ledger.Result
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range sale.Items {
			res, err := ledger.ApplyMovement(movRepo, productRepo, ledger.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeSalida,
				Quantity:  item.Quantity,
				Reason:    reason,
				UserID:    input.UserID,
			}, now)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publishAll(results)
	return sale, nil
}

// GetSale devuelve una venta con sus líneas.
func (uc *CheckoutUseCase) GetSale(id string) (*entity.Sale, error) {
	return uc.saleRepo.GetByID(id)
}

func clamp(qty, stock int64) int64 {
	if stock < 0 {
		return 0
	}
	if qty > stock {
		return stock
	}
	return qty
}

func (uc *CheckoutUseCase) publishAll(results []*ledger.Result) {
	if uc.publisher == nil {
		return
	}
	for _, res := range results {
		ev := ledger.MovementEvent{
			MovementID:   res.Movement.ID,
			ProductID:    res.Movement.ProductID,
			Type:         res.Movement.Type,
			Quantity:     res.Movement.Quantity,
			StockApplied: res.Applied,
			LowStock:     res.Applied && res.Low,
		}
		if res.Applied {
			stock := res.NewStock
			ev.NewStock = &stock
		}
		uc.publisher.PublishMovement(ev)
	}
}
