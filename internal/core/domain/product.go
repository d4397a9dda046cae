package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidProductID = errors.New("invalid product id")
)

// A Product is the only catalog entity.
//
// ID is assigned by the storage on creation and never changes afterwards.
type Product struct {
	ID          string
	Name        string
	Category    string
	Summary     string
	Description string
	ImageFile   string
	Price       float64
}

type ProductEventType string

const (
	ProductCreated ProductEventType = "created"
	ProductUpdated ProductEventType = "updated"
	ProductDeleted ProductEventType = "deleted"
)

// A ProductEvent describes a write that has already been applied to the
// catalog. Deleted events carry only the product ID.
type ProductEvent struct {
	Type       ProductEventType
	Product    Product
	OccurredAt time.Time
}
