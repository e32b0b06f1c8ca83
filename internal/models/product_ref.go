package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ProductKind distinguishes catalog products from user-owned products
type ProductKind string

const (
	ProductKindBase ProductKind = "base"
	ProductKindUser ProductKind = "user"
)

// ErrInvalidProductRef is returned when a row references both or neither product kinds
var ErrInvalidProductRef = errors.New("product reference must name exactly one of product_base_id or user_product_id")

// ProductRef identifies the product a diet item, inventory entry or
// shopping list item points at.
type ProductRef struct {
	Kind ProductKind `json:"kind"`
	ID   uuid.UUID   `json:"id"`
}

// BaseRef references a catalog product
func BaseRef(id uuid.UUID) ProductRef {
	return ProductRef{Kind: ProductKindBase, ID: id}
}

// UserRef references a user-owned product
func UserRef(id uuid.UUID) ProductRef {
	return ProductRef{Kind: ProductKindUser, ID: id}
}

// Key returns the aggregation key. User products are namespaced so they
// never collide with a catalog product id.
func (r ProductRef) Key() string {
	if r.Kind == ProductKindUser {
		return "user_" + r.ID.String()
	}
	return r.ID.String()
}

func (r ProductRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.ID)
}

// Columns splits the reference into its two nullable storage columns
func (r ProductRef) Columns() (productBaseID, userProductID *uuid.UUID) {
	id := r.ID
	switch r.Kind {
	case ProductKindBase:
		return &id, nil
	case ProductKindUser:
		return nil, &id
	}
	return nil, nil
}

// ParseProductRef builds a reference from the two storage columns.
func ParseProductRef(productBaseID, userProductID *uuid.UUID) (ProductRef, error) {
	hasBase := productBaseID != nil && *productBaseID != uuid.Nil
	hasUser := userProductID != nil && *userProductID != uuid.Nil
	switch {
	case hasBase && !hasUser:
		return BaseRef(*productBaseID), nil
	case hasUser && !hasBase:
		return UserRef(*userProductID), nil
	}
	return ProductRef{}, ErrInvalidProductRef
}
