package services

import (
	"database/sql"

	"github.com/paulikeo/mercadito/internal/apperr"
	"github.com/paulikeo/mercadito/internal/models"
)

// ProductServiceProvider defines the interface for the product catalog.
type ProductServiceProvider interface {
	GetAllProducts() ([]models.Product, error)
	GetProductByID(id int64) (models.Product, error)
	CreateProduct(identity models.Identity, name string, price float64, stock int64) (models.Product, error)
	UpdateProduct(identity models.Identity, id int64, name string, price float64, stock int64) error
	DeleteProduct(identity models.Identity, id int64) error
}

// ProductService provides business logic for catalog management.
type ProductService struct {
	db *sql.DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *sql.DB) *ProductService {
	return &ProductService{db: db}
}

const productColumns = `p.id, p.name, p.price, p.stock, p.user_id, p.created_at,
	u.id, u.full_name, u.email`

// scanProduct is a helper to scan a product with its creator summary from a
// row or rows object.
func scanProduct(scanner interface{ Scan(...interface{}) error }) (models.Product, error) {
	var p models.Product
	var c models.Creator

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.UserID, &p.CreatedAt,
		&c.ID, &c.FullName, &c.Email,
	)
	if err != nil {
		return p, err
	}

	p.Creator = &c
	return p, nil
}

// GetAllProducts returns every product with its creator joined in. The
// result is identical for every caller; there is no pagination or
// caller-based filtering.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	rows, err := s.db.Query(`SELECT ` + productColumns + `
		FROM products p JOIN users u ON u.id = p.user_id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProductByID retrieves a single product with its creator summary.
func (s *ProductService) GetProductByID(id int64) (models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+`
		FROM products p JOIN users u ON u.id = p.user_id
		WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Product{}, apperr.E(apperr.ErrNotFound, "product not found")
		}
		return models.Product{}, err
	}
	return p, nil
}

// CreateProduct persists a new product owned by the caller. The owner is
// always the resolved identity; any owner id in the request body is ignored.
func (s *ProductService) CreateProduct(identity models.Identity, name string, price float64, stock int64) (models.Product, error) {
	res, err := s.db.Exec("INSERT INTO products(name, price, stock, user_id) VALUES(?, ?, ?, ?)",
		name, price, stock, identity.ID)
	if err != nil {
		return models.Product{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, err
	}

	return s.GetProductByID(id)
}

// ownedProduct loads a product and enforces the ownership rule: mutation is
// allowed only when the stored owner id equals the caller's id.
func (s *ProductService) ownedProduct(identity models.Identity, id int64) (models.Product, error) {
	p, err := s.GetProductByID(id)
	if err != nil {
		return models.Product{}, err
	}
	if p.UserID != identity.ID {
		return models.Product{}, apperr.E(apperr.ErrForbidden, "only the creator can modify this product")
	}
	return p, nil
}

// UpdateProduct overwrites name, price and stock in place. All three fields
// are always rewritten; there are no partial-update semantics.
func (s *ProductService) UpdateProduct(identity models.Identity, id int64, name string, price float64, stock int64) error {
	if _, err := s.ownedProduct(identity, id); err != nil {
		return err
	}

	_, err := s.db.Exec("UPDATE products SET name = ?, price = ?, stock = ? WHERE id = ?",
		name, price, stock, id)
	return err
}

// DeleteProduct permanently removes a product.
func (s *ProductService) DeleteProduct(identity models.Identity, id int64) error {
	if _, err := s.ownedProduct(identity, id); err != nil {
		return err
	}

	_, err := s.db.Exec("DELETE FROM products WHERE id = ?", id)
	return err
}
