package service

import "errors"

var (
	// ErrCatalogUnavailable marks a collaborator failure on the product
	// store. It fails only the current request; session state is never
	// mutated before a successful catalog fetch.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrProductNotFound is returned when a choice references an id the
	// catalog does not know.
	ErrProductNotFound = errors.New("product not found")
)
