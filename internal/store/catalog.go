package store

import (
	"errors"
	"strings"

	"grocerypos/backend/internal/domain"
)

// AddCategory assigns the next id and appends. Ids grow monotonically and are
// never reused after a delete.
func (s *Store) AddCategory(name string) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, errors.New("category name is required")
	}

	s.mu.Lock()
	category := domain.Category{
		ID:   nextID(s.categories, func(c domain.Category) int { return c.ID }),
		Name: name,
	}
	s.categories = append(s.categories, category)
	s.persist(categoriesFile, s.categories)
	s.derive()
	s.mu.Unlock()

	s.notify()
	return category, nil
}

// UpdateCategory renames the category with the given id. An unknown id is a
// silent no-op.
func (s *Store) UpdateCategory(id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("category name is required")
	}

	s.mu.Lock()
	found := false
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil
	}
	s.persist(categoriesFile, s.categories)
	s.derive()
	s.mu.Unlock()

	s.notify()
	return nil
}

// CanDeleteCategory reports whether no product references the category.
func (s *Store) CanDeleteCategory(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.categoryInUse(id)
}

// DeleteCategory removes the category unless a product still references it.
// The refusal is reported as false, not as an error.
func (s *Store) DeleteCategory(id int) bool {
	s.mu.Lock()
	if s.categoryInUse(id) {
		s.mu.Unlock()
		return false
	}

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.persist(categoriesFile, s.categories)
	s.derive()
	s.mu.Unlock()

	s.notify()
	return true
}

func (s *Store) categoryInUse(id int) bool {
	for _, p := range s.products {
		if p.CategoryID == id {
			return true
		}
	}
	return false
}

// AddProduct assigns the next id and appends. A blank unit defaults to
// "piece".
func (s *Store) AddProduct(product domain.Product) (domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}
	if strings.TrimSpace(product.Unit) == "" {
		product.Unit = "piece"
	}

	s.mu.Lock()
	product.ID = nextID(s.products, func(p domain.Product) int { return p.ID })
	s.products = append(s.products, product)
	s.persist(productsFile, s.products)
	s.derive()
	saved := s.productByID(product.ID)
	s.mu.Unlock()

	s.notify()
	return saved, nil
}

// UpdateProduct replaces the product with the same id. An unknown id is a
// silent no-op.
func (s *Store) UpdateProduct(product domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	s.mu.Lock()
	found := false
	for i := range s.products {
		if s.products[i].ID == product.ID {
			s.products[i] = product
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil
	}
	s.persist(productsFile, s.products)
	s.derive()
	s.mu.Unlock()

	s.notify()
	return nil
}

// DeleteProduct removes the product; false when the id is unknown.
func (s *Store) DeleteProduct(id int) bool {
	s.mu.Lock()
	kept := s.products[:0]
	found := false
	for _, p := range s.products {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		s.mu.Unlock()
		return false
	}
	s.products = kept
	s.persist(productsFile, s.products)
	s.derive()
	s.mu.Unlock()

	s.notify()
	return true
}

// productByID must be called with s.mu held.
func (s *Store) productByID(id int) domain.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return domain.Product{}
}

func validateProduct(product domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return errors.New("product name is required")
	}
	if product.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if product.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}
