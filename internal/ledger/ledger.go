// Package ledger maps spreadsheet rows onto order records.
//
// Layout: column 1 holds the order id, column 2 the customer name and every
// following column one product, its cells encoded by package annotation.
// Row positions are never cached: every operation rescans the table, because
// a deleted row shifts all rows below it.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"butchers-ledger/internal/annotation"
	"butchers-ledger/internal/storage"
)

type Ledger struct {
	table storage.Table
	log   *slog.Logger
}

func New(table storage.Table, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Ledger{table: table, log: log}
}

type entry struct {
	row   int
	order storage.OrderRecord
}

type column struct {
	index   int
	product storage.ProductRef
}

// LoadAll returns every labeled row as an order, in ledger order. Only
// columns whose header matches a catalog product by name are read.
func (l *Ledger) LoadAll(ctx context.Context, catalog []storage.ProductRef) ([]storage.OrderRecord, error) {
	const op = "ledger.LoadAll"

	entries, err := l.snapshot(ctx, catalog)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders := make([]storage.OrderRecord, 0, len(entries))
	for _, e := range entries {
		orders = append(orders, e.order)
	}
	return orders, nil
}

// Find returns the first order with the given id.
func (l *Ledger) Find(ctx context.Context, orderID int, catalog []storage.ProductRef) (storage.OrderRecord, error) {
	const op = "ledger.Find"

	entries, err := l.snapshot(ctx, catalog)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyTable) {
			return storage.OrderRecord{}, fmt.Errorf("%s: id %d: %w", op, orderID, storage.ErrOrderNotFound)
		}
		return storage.OrderRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, e := range entries {
		if e.order.ID == orderID {
			return e.order, nil
		}
	}
	return storage.OrderRecord{}, fmt.Errorf("%s: id %d: %w", op, orderID, storage.ErrOrderNotFound)
}

// Active drops placeholder orders, the ones with no positive quantity.
func Active(orders []storage.OrderRecord) []storage.OrderRecord {
	active := make([]storage.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if !o.IsPlaceholder() {
			active = append(active, o)
		}
	}
	return active
}

// NextOrderID derives the id of a new order from the ledger's last used row:
// the new order gets the index of the row it is about to occupy. After a
// delete this can repeat an id that is still in use; existing is only used
// to report such a collision.
func (l *Ledger) NextOrderID(ctx context.Context, existing []storage.OrderRecord) (int, error) {
	const op = "ledger.NextOrderID"

	last, err := l.table.LastRow(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if last < 1 {
		// шапка будет создана при первой записи
		last = 1
	}

	id := last + 1
	for _, o := range existing {
		if o.ID == id {
			l.log.Warn("next order id is already used", slog.Int("id", id), slog.String("customer", o.CustomerName))
			break
		}
	}
	return id, nil
}

// OpenOrder appends a new order row holding only the customer name.
func (l *Ledger) OpenOrder(ctx context.Context, customerName string, catalog []storage.ProductRef) (storage.OrderRecord, error) {
	const op = "ledger.OpenOrder"

	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return storage.OrderRecord{}, fmt.Errorf("%s: %w", op, storage.ErrEmptyCustomer)
	}

	existing, err := l.LoadAll(ctx, catalog)
	if err != nil && !errors.Is(err, storage.ErrEmptyTable) {
		return storage.OrderRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := l.NextOrderID(ctx, existing)
	if err != nil {
		return storage.OrderRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	headers := make([]string, 0, len(catalog))
	for _, p := range catalog {
		headers = append(headers, p.Name)
	}

	row, err := l.table.AppendRow(ctx, storage.IntCell(id), customerName, headers)
	if err != nil {
		return storage.OrderRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	l.log.Info("order opened", slog.Int("id", id), slog.Int("row", row), slog.String("customer", customerName))

	entries, err := l.snapshot(ctx, catalog)
	if err != nil {
		return storage.OrderRecord{}, fmt.Errorf("%s: %w", op, err)
	}
	for _, e := range entries {
		if e.row == row {
			return e.order, nil
		}
	}
	return storage.OrderRecord{}, fmt.Errorf("%s: row %d missing after append", op, row)
}

// SetQuantity rewrites one product cell of the order.
func (l *Ledger) SetQuantity(ctx context.Context, orderID int, productName string, value storage.QuantityAnnotation) error {
	const op = "ledger.SetQuantity"

	if value.Quantity.IsNegative() {
		return fmt.Errorf("%s: %s: %w", op, value.Quantity, storage.ErrNegativeQuantity)
	}

	header, row, err := l.locate(ctx, orderID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	// id и имя клиента этим путем не меняются
	if storage.ProductColumnIndex(header, productName) < 0 {
		return fmt.Errorf("%s: %q: %w", op, productName, storage.ErrColumnNotFound)
	}

	text := annotation.Encode(value.Quantity, value.Annotation)
	if err := l.table.UpdateCell(ctx, row, productName, storage.TextCell(text)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	l.log.Debug("quantity set",
		slog.Int("id", orderID),
		slog.String("product", productName),
		slog.String("cell", text),
	)
	return nil
}

// DeleteOrder removes the order's row; rows below it move up.
func (l *Ledger) DeleteOrder(ctx context.Context, orderID int) error {
	const op = "ledger.DeleteOrder"

	_, row, err := l.locate(ctx, orderID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := l.table.DeleteRow(ctx, row); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	l.log.Info("order deleted", slog.Int("id", orderID), slog.Int("row", row))
	return nil
}

// locate finds the sheet row of the first order with the given id and
// returns it with the header it was found under.
func (l *Ledger) locate(ctx context.Context, orderID int) ([]string, int, error) {
	header, rows, err := l.table.ScanRows(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyTable) {
			return nil, 0, fmt.Errorf("id %d: %w", orderID, storage.ErrOrderNotFound)
		}
		return nil, 0, err
	}

	for _, r := range rows {
		if label(r) == "" {
			continue
		}
		if parseID(r.Cell(0)) == orderID {
			return header, r.Index, nil
		}
	}
	return nil, 0, fmt.Errorf("id %d: %w", orderID, storage.ErrOrderNotFound)
}

func (l *Ledger) snapshot(ctx context.Context, catalog []storage.ProductRef) ([]entry, error) {
	header, rows, err := l.table.ScanRows(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]storage.ProductRef, len(catalog))
	for _, p := range catalog {
		byName[p.Name] = p
	}

	var columns []column
	for i := 2; i < len(header); i++ {
		p, ok := byName[header[i]]
		if !ok {
			continue
		}
		columns = append(columns, column{index: i, product: p})
	}

	entries := make([]entry, 0, len(rows))
	for _, r := range rows {
		name := label(r)
		if name == "" {
			continue
		}

		order := storage.OrderRecord{
			ID:           parseID(r.Cell(0)),
			CustomerName: name,
			Items:        make([]storage.OrderItem, 0, len(columns)),
		}
		for _, c := range columns {
			q, a := annotation.Decode(r.Cell(c.index).String())
			order.Items = append(order.Items, storage.OrderItem{
				Product:            c.product,
				QuantityAnnotation: storage.QuantityAnnotation{Quantity: q, Annotation: a},
			})
		}

		entries = append(entries, entry{row: r.Index, order: order})
	}

	return entries, nil
}

func label(r storage.Row) string {
	return strings.TrimSpace(r.Cell(1).String())
}

// parseID reads the id column; anything that is not an integer is 0.
func parseID(c storage.Cell) int {
	switch c.Kind {
	case storage.CellNumber:
		if c.Number.IsInteger() {
			return int(c.Number.IntPart())
		}
		return 0
	case storage.CellText:
		id, err := strconv.Atoi(strings.TrimSpace(c.Text))
		if err != nil {
			return 0
		}
		return id
	default:
		return 0
	}
}
