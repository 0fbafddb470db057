package domain

import "errors"

// Domain-specific errors for catalog and copy operations.
var (
	// Catalog errors
	ErrEmptyCatalog      = errors.New("catalog has no categories")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrDuplicateCard     = errors.New("duplicate card id")
	ErrInvalidCard       = errors.New("invalid card")

	// Lookup errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrCardNotFound     = errors.New("card not found")

	// Copy errors
	ErrNoRawContent = errors.New("card has no raw content url")
	ErrCopyFailed   = errors.New("fetch or copy failed")

	// Validation errors
	ErrEmptyQuery     = errors.New("search query is required")
	ErrInvalidOutcome = errors.New("invalid copy outcome")
)
