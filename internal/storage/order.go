package storage

import "github.com/shopspring/decimal"

type UnitKind string

const (
	UnitUnknown  UnitKind = ""
	UnitByWeight UnitKind = "by_weight"
	UnitByCount  UnitKind = "by_count"
)

// ProductRef is a catalog entry. Ledger columns are matched to it by Name only.
type ProductRef struct {
	Name     string   `json:"name"`
	UnitKind UnitKind `json:"unit_kind"`
}

// QuantityAnnotation is the content of one product cell: a quantity and an
// optional lot marker. Empty Annotation means no marker.
type QuantityAnnotation struct {
	Quantity   decimal.Decimal `json:"quantity"`
	Annotation string          `json:"annotation,omitempty"`
}

type OrderItem struct {
	Product ProductRef `json:"product"`
	QuantityAnnotation
}

type OrderRecord struct {
	ID           int         `json:"id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
}

// IsPlaceholder reports whether the order has a customer but no positive quantity.
func (o OrderRecord) IsPlaceholder() bool {
	for _, it := range o.Items {
		if it.Quantity.IsPositive() {
			return false
		}
	}
	return true
}

// Item returns the item for the given product column.
func (o OrderRecord) Item(productName string) (OrderItem, bool) {
	for _, it := range o.Items {
		if it.Product.Name == productName {
			return it, true
		}
	}
	return OrderItem{}, false
}
