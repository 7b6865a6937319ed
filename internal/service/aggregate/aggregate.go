package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"butchers-ledger/internal/factors"
	"butchers-ledger/internal/storage"
)

// SummaryKey identifies one lot of a product. An empty Annotation is its own
// bucket and never merges with annotated ones.
type SummaryKey struct {
	Product    string
	Annotation string
}

type ProductSummary map[SummaryKey]decimal.Decimal

// Requirements is the amount of each meat type needed for a summary.
type Requirements map[string]decimal.Decimal

// SummarizeProducts totals quantities per product and annotation. Placeholder
// orders and zero quantities add no bucket.
func SummarizeProducts(orders []storage.OrderRecord) ProductSummary {
	summary := make(ProductSummary)
	for _, o := range orders {
		if o.IsPlaceholder() {
			continue
		}
		for _, it := range o.Items {
			if !it.Quantity.IsPositive() {
				continue
			}
			key := SummaryKey{Product: it.Product.Name, Annotation: it.Annotation}
			summary[key] = summary[key].Add(it.Quantity)
		}
	}
	return summary
}

// Merge sums two summaries key by key.
func Merge(a, b ProductSummary) ProductSummary {
	out := make(ProductSummary, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = out[k].Add(v)
	}
	return out
}

// ComputeRequirements converts product totals into meat requirements.
// Annotations are ignored for the lookup; products without factors are
// skipped.
func ComputeRequirements(summary ProductSummary, table factors.Table) Requirements {
	req := make(Requirements)
	for key, qty := range summary {
		for meat, row := range table {
			f, ok := row[key.Product]
			if !ok {
				continue
			}
			req[meat] = req[meat].Add(qty.Mul(f))
		}
	}
	return req
}

type SummaryLine struct {
	Product    string           `json:"product"`
	Annotation string           `json:"annotation,omitempty"`
	UnitKind   storage.UnitKind `json:"unit_kind,omitempty"`
	Total      decimal.Decimal  `json:"total"`
}

type RequirementLine struct {
	Meat  string          `json:"meat"`
	Total decimal.Decimal `json:"total"`
}

// SummaryLines flattens a summary for display, ordered by product then
// annotation with the plain bucket first.
func SummaryLines(summary ProductSummary, catalog []storage.ProductRef) []SummaryLine {
	units := make(map[string]storage.UnitKind, len(catalog))
	for _, p := range catalog {
		units[p.Name] = p.UnitKind
	}

	lines := make([]SummaryLine, 0, len(summary))
	for k, v := range summary {
		lines = append(lines, SummaryLine{
			Product:    k.Product,
			Annotation: k.Annotation,
			UnitKind:   units[k.Product],
			Total:      v,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Product != lines[j].Product {
			return lines[i].Product < lines[j].Product
		}
		return lines[i].Annotation < lines[j].Annotation
	})
	return lines
}

func RequirementLines(req Requirements) []RequirementLine {
	lines := make([]RequirementLine, 0, len(req))
	for meat, total := range req {
		lines = append(lines, RequirementLine{Meat: meat, Total: total})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Meat < lines[j].Meat })
	return lines
}
