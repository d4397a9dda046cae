package httphandler

import "github.com/niksmo/catalog/internal/core/domain"

type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	ImageFile   string  `json:"imageFile"`
	Price       float64 `json:"price"`
}

func productToDomain(p Product) domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       p.Price,
	}
}

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Summary:     p.Summary,
		Description: p.Description,
		ImageFile:   p.ImageFile,
		Price:       p.Price,
	}
}

func productsFromDomain(ps []domain.Product) []Product {
	vs := make([]Product, len(ps))
	for i := range ps {
		vs[i] = productFromDomain(ps[i])
	}
	return vs
}
