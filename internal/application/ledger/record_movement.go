package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inventario-pos/internal/domain"
	"inventario-pos/internal/domain/entity"
	domledger "inventario-pos/internal/domain/ledger"
	"inventario-pos/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de inventario de forma transaccional.
//
// Regla central del libro: cada movimiento se anexa exactamente una vez al log y,
// si el producto existe, su stock se ajusta en la misma transacción
// (stock = stock + cantidad para entrada, - cantidad para salida). No hay piso:
// una salida puede dejar el stock negativo.
type RecordMovementUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
}

// NewRecordMovementUseCase construye el caso de uso. publisher puede ser nil.
func NewRecordMovementUseCase(txRunner TxRunner, publisher EventPublisher) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, publisher: publisher}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID string
	Type      string // entrada | salida
	Quantity  int64  // > 0
	Reason    string
	UserID    string
}

// Result resultado de registrar un movimiento.
// Applied es false cuando el producto referenciado no existe: el movimiento queda
// en el log (registro de auditoría) y ningún stock cambia. NewStock y Low solo
// son válidos con Applied en true.
type Result struct {
	Movement *entity.StockMovement
	Applied  bool
	NewStock int64
	Low      bool
}

// RecordMovement valida la entrada, abre una transacción y aplica el movimiento.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var res *Result
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		r, err := ApplyMovement(movRepo, productRepo, input, time.Now())
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(res)
	return res, nil
}

// ApplyMovement ejecuta la regla del libro con los repositorios proporcionados
// (misma transacción del caller). La usan también el checkout del POS y la
// recepción de órdenes de compra para emitir sus movimientos.
//
// Política de producto no encontrado: el movimiento se anexa igualmente al log,
// ningún stock se ajusta y no se devuelve error; el resultado lo reporta con
// Applied en false.
func ApplyMovement(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		Reason:    input.Reason,
		Date:      now,
		UserID:    input.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}

	product, err := productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		// Solo auditoría: el log y los totales derivados divergen a propósito.
		return &Result{Movement: mov, Applied: false}, nil
	}

	// El stock nuevo sale del propio ajuste, no de la lectura previa: otro
	// escritor pudo intercalarse entre ambas.
	newStock, err := productRepo.AdjustStock(product.ID, mov.Delta(), now)
	if err != nil {
		return nil, err
	}
	if newStock == nil {
		return &Result{Movement: mov, Applied: false}, nil
	}

	after := *product
	after.Stock = *newStock
	return &Result{
		Movement: mov,
		Applied:  true,
		NewStock: after.Stock,
		Low:      domledger.IsLowStock(&after),
	}, nil
}

func validateInput(input MovementInput) error {
	if input.ProductID == "" || input.Quantity <= 0 || !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (uc *RecordMovementUseCase) publish(res *Result) {
	if uc.publisher == nil || res == nil {
		return
	}
	ev := MovementEvent{
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
