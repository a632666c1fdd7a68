package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"inventario-pos/internal/domain/entity"
)

// Seed carga los datos de muestra del modo demo: catálogo, proveedores, un par de
// movimientos históricos y los tres usuarios de demostración
// (admin@ejemplo.com / admin123, ventas@ejemplo.com / ventas123,
// inventario@ejemplo.com / inventario123).
func Seed(s *Store) error {
	now := time.Now()

	products := []*entity.Product{
		{
			ID: "1", SKU: "PRD-001", Name: "Laptop HP Pavilion",
			Description: "Laptop HP Pavilion 15.6\" Core i5, 8GB RAM, 512GB SSD",
			Category:    "Computadoras", Price: decimal.NewFromFloat(899.99),
			Stock: 15, MinStock: 5,
			CreatedAt: now.AddDate(0, -8, 0), UpdatedAt: now.AddDate(0, -4, 0),
		},
		{
			ID: "2", SKU: "PRD-002", Name: "Monitor LG UltraWide",
			Description: "Monitor LG UltraWide 34\" 3440x1440",
			Category:    "Periféricos", Price: decimal.NewFromFloat(399.99),
			Stock: 8, MinStock: 3,
			CreatedAt: now.AddDate(0, -7, 0), UpdatedAt: now.AddDate(0, -3, 0),
		},
		{
			ID: "3", SKU: "PRD-003", Name: "Teclado Mecánico RGB",
			Description: "Teclado mecánico gaming con retroiluminación RGB",
			Category:    "Periféricos", Price: decimal.NewFromFloat(89.99),
			Stock: 25, MinStock: 10,
			CreatedAt: now.AddDate(0, -6, 0), UpdatedAt: now.AddDate(0, -2, 0),
		},
		{
			ID: "4", SKU: "PRD-004", Name: "Mouse Inalámbrico",
			Description: "Mouse inalámbrico ergonómico con sensor láser",
			Category:    "Periféricos", Price: decimal.NewFromFloat(49.99),
			Stock: 30, MinStock: 8,
			CreatedAt: now.AddDate(0, -5, 0), UpdatedAt: now.AddDate(0, -1, 0),
		},
		{
			ID: "5", SKU: "PRD-005", Name: "SSD Samsung 1TB",
			Description: "Disco de estado sólido Samsung 1TB NVME",
			Category:    "Componentes", Price: decimal.NewFromFloat(129.99),
			Stock: 12, MinStock: 5,
			CreatedAt: now.AddDate(0, -4, 0), UpdatedAt: now,
		},
	}
	for _, p := range products {
		if err := s.Products().Create(p); err != nil {
			return err
		}
	}

	suppliers := []*entity.Supplier{
		{
			ID: "1", Name: "TechSupply S.A.", Contact: "María López",
			Email: "contacto@techsupply.com", Phone: "+34 91 123 4567",
			Address: "Calle Tecnología 123, Madrid", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "2", Name: "ComponentesPC", Contact: "Juan Martínez",
			Email: "info@componentespc.com", Phone: "+34 93 987 6543",
			Address: "Avenida Digital 456, Barcelona", CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: "3", Name: "Distribuidora InforMatic", Contact: "Carlos Ruiz",
			Email: "ventas@informatic.com", Phone: "+34 96 555 2233",
			Address: "Plaza Informática 78, Valencia", CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, sp := range suppliers {
		if err := s.Suppliers().Create(sp); err != nil {
			return err
		}
	}

	movements := []*entity.StockMovement{
		{ID: uuid.New().String(), ProductID: "1", Type: entity.MovementTypeEntrada, Quantity: 10, Reason: "Compra inicial", Date: now.AddDate(0, -8, 0), UserID: "1"},
		{ID: uuid.New().String(), ProductID: "1", Type: entity.MovementTypeSalida, Quantity: 2, Reason: "Venta", Date: now.AddDate(0, -7, 0), UserID: "2"},
		{ID: uuid.New().String(), ProductID: "2", Type: entity.MovementTypeEntrada, Quantity: 15, Reason: "Reposición", Date: now.AddDate(0, -6, 0), UserID: "3"},
	}
	for _, m := range movements {
		if err := s.Movements().Create(m); err != nil {
			return err
		}
	}

	demoUsers := []struct {
		id, name, email, password, role string
	}{
		{"1", "Admin Usuario", "admin@ejemplo.com", "admin123", entity.RoleAdmin},
		{"2", "Vendedor Usuario", "ventas@ejemplo.com", "ventas123", entity.RoleVendedor},
		{"3", "Inventario Usuario", "inventario@ejemplo.com", "inventario123", entity.RoleBodeguero},
	}
	for _, du := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := &entity.User{
			ID: du.id, Email: du.email, PasswordHash: string(hash),
			Name: du.name, Role: du.role, Status: "active",
			CreatedAt: now, UpdatedAt: now,
		}
		if err := s.Users().Create(u); err != nil {
			return err
		}
	}

	return nil
}
