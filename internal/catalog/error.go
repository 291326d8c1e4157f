package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPriceNotSet     = errors.New("product has no price")
)
