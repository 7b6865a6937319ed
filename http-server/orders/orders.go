package orders

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"butchers-ledger/internal/annotation"
	"butchers-ledger/internal/storage"
)

type Item struct {
	Product    string           `json:"product"`
	UnitKind   storage.UnitKind `json:"unit_kind"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Annotation string           `json:"annotation,omitempty"`
	// Cell - значение в том виде, в котором оно хранится в таблице
	Cell string `json:"cell"`
}

type Order struct {
	ID           int    `json:"id"`
	CustomerName string `json:"customer_name"`
	Placeholder  bool   `json:"placeholder"`
	Items        []Item `json:"items"`
}

func FromRecord(o storage.OrderRecord) Order {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		cell := ""
		if it.Quantity.IsPositive() || it.Annotation != "" {
			cell = annotation.Encode(it.Quantity, it.Annotation)
		}
		items = append(items, Item{
			Product:    it.Product.Name,
			UnitKind:   it.Product.UnitKind,
			Quantity:   it.Quantity,
			Annotation: it.Annotation,
			Cell:       cell,
		})
	}

	return Order{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Placeholder:  o.IsPlaceholder(),
		Items:        items,
	}
}

func FromRecords(records []storage.OrderRecord) []Order {
	out := make([]Order, 0, len(records))
	for _, o := range records {
		out = append(out, FromRecord(o))
	}
	return out
}

// ParseID parses the {id} URL parameter.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid order id %q", raw)
	}
	return id, nil
}
