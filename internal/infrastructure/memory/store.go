// Package memory implementa los puertos de persistencia sobre slices en memoria.
//
// Se usa en modo demo (APP_ENV=demo, sin PostgreSQL) y en los tests de los casos
// de uso. Un único mutex serializa las escrituras, de modo que el par "anexar
// movimiento + ajustar stock" es atómico para los callers igual que en el
// adaptador transaccional.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"inventario-pos/internal/domain/entity"
	"inventario-pos/internal/domain/repository"
)

// Store contenedor de todas las colecciones en memoria.
type Store struct {
	mu        sync.RWMutex
	products  []*entity.Product
	movements []*entity.StockMovement
	suppliers []*entity.Supplier
	orders    []*entity.PurchaseOrder
	users     []*entity.User
	sales     []*entity.Sale
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{}
}

// Products devuelve el repositorio de productos sobre este almacén.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Movements devuelve el repositorio del log de movimientos.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s: s} }

// PurchaseOrders devuelve el repositorio de órdenes de compra.
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return &purchaseRepo{s: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// Sales devuelve el repositorio de ventas.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s: s} }

// foldTransform elimina marcas diacríticas para búsquedas sin acentos.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func fold(s string) string {
	out, _, err := transform.String(foldTransform, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// ── Productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	r.s.products = append(r.s.products, &cp)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, cur := range r.s.products {
		if cur.ID == p.ID {
			// Stock nunca se escribe por este camino.
			cur.Name = p.Name
			cur.Description = p.Description
			cur.Category = p.Category
			cur.Price = p.Price
			cur.MinStock = p.MinStock
			cur.Image = p.Image
			cur.UpdatedAt = p.UpdatedAt
			return nil
		}
	}
	return nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.products {
		if p.ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return pageProducts(r.s.products, limit, offset), nil
}

func (r *productRepo) Search(term string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := fold(term)
	var matched []*entity.Product
	for _, p := range r.s.products {
		if strings.Contains(fold(p.Name), needle) ||
			strings.Contains(fold(p.SKU), needle) ||
			strings.Contains(fold(p.Category), needle) {
			matched = append(matched, p)
		}
	}
	return pageProducts(matched, limit, offset), nil
}

func (r *productRepo) AdjustStock(productID string, delta int64, now time.Time) (*int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == productID {
			p.Stock += delta
			p.UpdatedAt = now
			stock := p.Stock
			return &stock, nil
		}
	}
	return nil, nil
}

func (r *productRepo) ListBelowMinStock() ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Stock <= p.MinStock {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *productRepo) Count() (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.products), nil
}

func pageProducts(src []*entity.Product, limit, offset int) []*entity.Product {
	sorted := make([]*entity.Product, len(src))
	copy(sorted, src)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	out := make([]*entity.Product, 0, limit)
	for i := offset; i < len(sorted) && len(out) < limit; i++ {
		cp := *sorted[i]
		out = append(out, &cp)
	}
	return out
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) List(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var filtered []*entity.StockMovement
	for _, m := range r.s.movements {
		if productID == "" || m.ProductID == productID {
			filtered = append(filtered, m)
		}
	}
	// Fecha descendente; el sort estable conserva el orden de inserción entre iguales.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})
	out := make([]*entity.StockMovement, 0, limit)
	for i := offset; i < len(filtered) && len(out) < limit; i++ {
		cp := *filtered[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *movementRepo) CountSince(t time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.movements {
		if !m.Date.Before(t) {
			n++
		}
	}
	return n, nil
}

// ── Proveedores ───────────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sp
	r.s.suppliers = append(r.s.suppliers, &cp)
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sp := range r.s.suppliers {
		if sp.ID == id {
			cp := *sp
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *supplierRepo) Update(sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.suppliers {
		if cur.ID == sp.ID {
			cp := *sp
			r.s.suppliers[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *supplierRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, sp := range r.s.suppliers {
		if sp.ID == id {
			r.s.suppliers = append(r.s.suppliers[:i], r.s.suppliers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Supplier, 0, limit)
	for i := offset; i < len(r.s.suppliers) && len(out) < limit; i++ {
		cp := *r.s.suppliers[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

type purchaseRepo struct{ s *Store }

func (r *purchaseRepo) Create(o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := copyOrder(o)
	r.s.orders = append(r.s.orders, cp)
	return nil
}

func (r *purchaseRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			return copyOrder(o), nil
		}
	}
	return nil, nil
}

func (r *purchaseRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sorted := make([]*entity.PurchaseOrder, len(r.s.orders))
	copy(sorted, r.s.orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	out := make([]*entity.PurchaseOrder, 0, limit)
	for i := offset; i < len(sorted) && len(out) < limit; i++ {
		out = append(out, copyOrder(sorted[i]))
	}
	return out, nil
}

func (r *purchaseRepo) UpdateStatus(id, fromStatus, toStatus string, receivedAt *time.Time, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			// Comparar y cambiar bajo el mismo lock.
			if o.Status != fromStatus {
				return false, nil
			}
			o.Status = toStatus
			o.UpdatedAt = now
			if receivedAt != nil {
				t := *receivedAt
				o.ReceivedAt = &t
			}
			return true, nil
		}
	}
	return false, nil
}

func copyOrder(o *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *o
	cp.Items = make([]entity.PurchaseOrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	if o.ReceivedAt != nil {
		t := *o.ReceivedAt
		cp.ReceivedAt = &t
	}
	return &cp
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, cur := range r.s.users {
		if cur.ID == u.ID {
			cp := *u
			r.s.users[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *userRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == id {
			r.s.users = append(r.s.users[:i], r.s.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *userRepo) List(limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.User, 0, limit)
	for i := offset; i < len(r.s.users) && len(out) < limit; i++ {
		cp := *r.s.users[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales = append(r.s.sales, copySale(sale))
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, sale := range r.s.sales {
		if sale.ID == id {
			return copySale(sale), nil
		}
	}
	return nil, nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sorted := make([]*entity.Sale, len(r.s.sales))
	copy(sorted, r.s.sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	out := make([]*entity.Sale, 0, limit)
	for i := offset; i < len(sorted) && len(out) < limit; i++ {
		out = append(out, copySale(sorted[i]))
	}
	return out, nil
}

func copySale(s *entity.Sale) *entity.Sale {
	cp := *s
	cp.Items = make([]entity.SaleItem, len(s.Items))
	copy(cp.Items, s.Items)
	return &cp
}
