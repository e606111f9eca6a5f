// Package model defines data structures used throughout the application.
package model

import (
	"encoding/json"
	"errors"
)

// ErrMissingFields is returned when a create request lacks a required field.
var ErrMissingFields = errors.New("missing required fields")

// Item is a single inventory record.
type Item struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
	Quantity NullInt   `json:"quantity"`
	Category string    `json:"category"`
	Supplier string    `json:"supplier"`
	Weight   NullFloat `json:"weight"`
}

// ItemInput is the body accepted when creating an item.
// Quantity and Weight are kept raw so that an absent field can be told apart
// from an explicit null, and so that strings can be coerced like numbers.
type ItemInput struct {
	Name     string          `json:"name"`
	Status   string          `json:"status"`
	Quantity json.RawMessage `json:"quantity"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier"`
	Weight   json.RawMessage `json:"weight"`
}

// Validate checks that every required field is present.
// Zero is a valid quantity and weight; only absence is rejected.
func (in *ItemInput) Validate() error {
	if in.Name == "" ||
		in.Status == "" ||
		in.Category == "" ||
		in.Supplier == "" ||
		len(in.Quantity) == 0 ||
		len(in.Weight) == 0 {
		return ErrMissingFields
	}

	return nil
}

// ToItem builds the stored record for the given id, coercing numeric fields.
func (in *ItemInput) ToItem(id int) Item {
	return Item{
		ID:       id,
		Name:     in.Name,
		Status:   in.Status,
		Quantity: CoerceInt(in.Quantity),
		Category: in.Category,
		Supplier: in.Supplier,
		Weight:   CoerceFloat(in.Weight),
	}
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
