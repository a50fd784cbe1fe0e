package wishlist

import (
	"github.com/google/uuid"

	"github.com/jordanvasquez/threadline-backend/internal/catalog"
)

// AddResultDTO reports the outcome of an add attempt. NewlyAdded is derived
// from the insert primitive itself, so concurrent adds of the same product
// can never both report a fresh insert.
type AddResultDTO struct {
	NewlyAdded bool
	Refs       []uuid.UUID
}

// ResolvedWishlistDTO is the read view: every member joined to its current
// product projection, with unresolvable members filtered out.
type ResolvedWishlistDTO struct {
	Products []catalog.ProductSummary
}
