package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/orderservice/internal/domain/errors"
	"github.com/polkiloo/orderservice/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, user_id, status, total_amount, street, city, state, zip_code, country, created_at, updated_at`

// sortColumns whitelists order attributes accepted for sorting.
var sortColumns = map[string]string{
	"id":           "id",
	"userid":       "user_id",
	"user_id":      "user_id",
	"status":       "status",
	"totalamount":  "total_amount",
	"total_amount": "total_amount",
	"createdat":    "created_at",
	"created_at":   "created_at",
	"updatedat":    "updated_at",
	"updated_at":   "updated_at",
}

func sortColumn(field string) (string, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return "created_at", nil
	}
	column, ok := sortColumns[field]
	if !ok {
		return "", fmt.Errorf("sort by %q: %w", field, domainErrors.ErrInvalidSortField)
	}
	return column, nil
}

// Save persists the aggregate root and replaces its items in one transaction.
func (r *orderRepository) Save(ctx context.Context, order *model.Order) (*model.Order, error) {
	if order == nil {
		return nil, errors.New("save order: nil aggregate")
	}

	saved := *order
	saved.Items = append([]model.OrderItem(nil), order.Items...)

	now := r.storage.now().UTC()
	if saved.ID == "" {
		saved.ID = r.storage.newID()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = now
	}
	saved.UpdatedAt = now
	for i := range saved.Items {
		if saved.Items[i].ID == "" {
			saved.Items[i].ID = r.storage.newID()
		}
		saved.Items[i].OrderID = saved.ID
		saved.Items[i].Position = i
	}

	const upsertOrder = `INSERT INTO orders (` + orderColumns + `)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                         ON CONFLICT (id) DO UPDATE SET
                             user_id = EXCLUDED.user_id,
                             status = EXCLUDED.status,
                             total_amount = EXCLUDED.total_amount,
                             street = EXCLUDED.street,
                             city = EXCLUDED.city,
                             state = EXCLUDED.state,
                             zip_code = EXCLUDED.zip_code,
                             country = EXCLUDED.country,
                             updated_at = EXCLUDED.updated_at
                         RETURNING created_at`
	const deleteItems = `DELETE FROM order_items WHERE order_id = $1`
	const insertItem = `INSERT INTO order_items (id, order_id, position, product_id, product_name, quantity, price, subtotal)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		addr := saved.ShippingAddress
		var createdAt time.Time
		if err := tx.QueryRow(ctx, upsertOrder,
			saved.ID, saved.UserID, string(saved.Status), saved.TotalAmount,
			addr.Street, addr.City, addr.State, addr.ZipCode, addr.Country,
			saved.CreatedAt, saved.UpdatedAt,
		).Scan(&createdAt); err != nil {
			return fmt.Errorf("upsert order: %w", err)
		}
		saved.CreatedAt = createdAt

		if _, err := tx.Exec(ctx, deleteItems, saved.ID); err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}

		for _, item := range saved.Items {
			if _, err := tx.Exec(ctx, insertItem,
				item.ID, item.OrderID, item.Position, item.ProductID, item.ProductName,
				item.Quantity, item.Price, item.Subtotal,
			); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := loadItems(ctx, r.storage.pool, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	if page.Page < 0 || page.Size <= 0 {
		return nil, domainErrors.ErrInvalidPagination
	}
	column, err := sortColumn(page.SortBy)
	if err != nil {
		return nil, err
	}
	direction := model.SortDesc
	if page.Direction == model.SortAsc {
		direction = model.SortAsc
	}

	const countQuery = `SELECT COUNT(*) FROM orders WHERE user_id = $1`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	offset := int64(page.Page) * int64(page.Size)
	if offset >= total {
		return model.NewOrderPage(nil, page, total), nil
	}

	// column and direction come from whitelists above.
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY %s %s, id %s LIMIT $2 OFFSET $3`,
		orderColumns, column, direction, direction)

	rows, err := r.storage.pool.Query(ctx, query, userID, page.Size, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		orders []model.Order
		ids    []string
	)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		items, err := loadItems(ctx, r.storage.pool, ids)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			orders[i].Items = items[orders[i].ID]
		}
	}

	return model.NewOrderPage(orders, page, total), nil
}

func (r *orderRepository) RecentProductIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	const query = `SELECT i.product_id
                   FROM order_items i
                   JOIN orders o ON o.id = i.order_id
                   GROUP BY i.product_id
                   ORDER BY MAX(o.created_at) DESC
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o      model.Order
		status string
		total  decimal.Decimal
	)
	if err := row.Scan(
		&o.ID, &o.UserID, &status, &total,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.ZipCode, &o.ShippingAddress.Country,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := model.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	o.Status = parsed
	o.TotalAmount = total
	return &o, nil
}

func loadItems(ctx context.Context, q querier, orderIDs []string) (map[string][]model.OrderItem, error) {
	const query = `SELECT id, order_id, position, product_id, product_name, quantity, price, subtotal
                   FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Position, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.Subtotal); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
