package basket

import "errors"

var (
	ErrPriceNotSet = errors.New("product has no price")
)
