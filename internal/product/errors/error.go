// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidSortKey = errors.New("invalid sort key")
var ErrInvalidProductType = errors.New("invalid product type")
