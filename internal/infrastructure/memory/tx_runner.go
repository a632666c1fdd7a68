package memory

import (
	"context"
	"sync"

	"inventario-pos/internal/domain/repository"
)

// TxRunner versión en memoria del runner transaccional: no hay rollback, pero un
// mutex dedicado serializa cada "transacción" completa, así que el par anexar
// movimiento + ajustar stock nunca se intercala con otro escritor.
type TxRunner struct {
	txMu  sync.Mutex
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con los repositorios del ledger.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r.store.Movements(), r.store.Products())
}

// RunSale ejecuta fn con los repositorios del checkout POS.
func (r *TxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r.store.Movements(), r.store.Products(), r.store.Sales())
}

// RunPurchase ejecuta fn con los repositorios de recepción de compras.
func (r *TxRunner) RunPurchase(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r.store.Movements(), r.store.Products(), r.store.PurchaseOrders())
}
