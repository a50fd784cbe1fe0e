package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Variant is one purchasable SKU of a product with its own inventory counter.
// SKU ids are unique across the whole catalog, not just within a product.
type Variant struct {
	SKUID     int64  `json:"skuId"`
	Label     string `json:"label"`
	Inventory int    `json:"inventory"`
	Available bool   `json:"available"`
}

// VariantList persists the embedded variant records as a JSONB column so a
// product's inventory is always written in the same statement as the product
// row itself.
type VariantList []Variant

// Value serializes the variants to JSON.
func (v VariantList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// Scan decodes JSONB into the variant slice.
func (v *VariantList) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded VariantList
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*v = decoded
	return nil
}

// Find returns the variant carrying the given SKU id, or nil.
func (v VariantList) Find(skuID int64) *Variant {
	for i := range v {
		if v[i].SKUID == skuID {
			return &v[i]
		}
	}
	return nil
}

// TotalAvailable sums inventory across variants that are still available.
func (v VariantList) TotalAvailable() int {
	total := 0
	for _, variant := range v {
		if variant.Available {
			total += variant.Inventory
		}
	}
	return total
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported scan type %T", value)
	}
}
