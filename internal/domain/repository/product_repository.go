package repository

import (
	"time"

	"inventario-pos/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
//
// El stock no se escribe por Update: solo AdjustStock puede moverlo, y únicamente
// lo invoca el motor del ledger dentro de una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// Update modifica los campos descriptivos; nunca Stock.
	Update(product *entity.Product) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	// Search filtra por nombre, SKU o categoría, sin distinguir acentos.
	Search(term string, limit, offset int) ([]*entity.Product, error)
	// AdjustStock aplica stock = stock + delta y refresca updated_at. Devuelve el
	// stock resultante de la propia escritura, que es el valor autoritativo aunque
	// otro escritor se haya intercalado tras la lectura del caller. Nil si el
	// producto no existe (sin error).
	AdjustStock(productID string, delta int64, now time.Time) (*int64, error)
	// ListBelowMinStock devuelve los productos con stock <= min_stock (sin ordenar).
	ListBelowMinStock() ([]*entity.Product, error)
	Count() (int, error)
}
