package database

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"github.com/ipshopy/order-notify/internal/entity"
)

// Table prefix of the store install. Change "oc_" here if yours differs.
const tablePrefix = "oc_"

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

const findOrderQuery = `
	SELECT
		o.order_id,
		o.firstname,
		o.lastname,
		o.telephone AS order_phone,
		o.date_added,
		o.total,
		os.name AS status_name,
		c.telephone AS customer_phone
	FROM ` + tablePrefix + `order o
	LEFT JOIN ` + tablePrefix + `customer c ON o.customer_id = c.customer_id
	LEFT JOIN ` + tablePrefix + `order_status os
		ON o.order_status_id = os.order_status_id
		AND os.language_id = 1
	WHERE o.order_id = ?
	LIMIT 1`

func (r *OrderRepository) FindWithPhone(ctx context.Context, orderID int) (*entity.Order, string, error) {
	var (
		id            int
		firstName     sql.NullString
		lastName      sql.NullString
		orderPhone    sql.NullString
		dateAdded     sql.NullString
		total         sql.NullString
		statusName    sql.NullString
		customerPhone sql.NullString
	)

	row := r.DB.QueryRowContext(ctx, findOrderQuery, orderID)
	err := row.Scan(&id, &firstName, &lastName, &orderPhone, &dateAdded, &total, &statusName, &customerPhone)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		log.Printf("❌ Order query failed: %v", err)
		return nil, "", err
	}

	// Prefer the phone on the order itself, fall back to the account phone
	phone := orderPhone.String
	if phone == "" {
		phone = customerPhone.String
	}

	order := entity.NewOrder(id, firstName.String, lastName.String, statusName.String, total.String, dateAdded.String, "")
	return order, phone, nil
}

const findForAutomationQuery = `
	SELECT
		o.order_id,
		o.firstname,
		o.lastname,
		o.telephone AS order_phone,
		o.date_added,
		o.total,
		o.order_status_id,
		os.name AS status_name,
		c.telephone AS customer_phone
	FROM ` + tablePrefix + `order o
	LEFT JOIN ` + tablePrefix + `customer c ON o.customer_id = c.customer_id
	LEFT JOIN ` + tablePrefix + `order_status os
		ON o.order_status_id = os.order_status_id
		AND os.language_id = 1
	WHERE 1=1`

func (r *OrderRepository) FindForAutomation(ctx context.Context, filter entity.AutomationFilter) ([]entity.Order, error) {
	query := findForAutomationQuery
	var args []any

	if filter.OrderStatusID != nil {
		query += " AND o.order_status_id = ?"
		args = append(args, *filter.OrderStatusID)
	}
	if filter.DaysBack != nil {
		query += " AND o.date_added >= DATE_SUB(NOW(), INTERVAL ? DAY)"
		args = append(args, *filter.DaysBack)
	}

	query += " ORDER BY o.order_id DESC"

	if filter.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *filter.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Automation query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var (
			id            int
			firstName     sql.NullString
			lastName      sql.NullString
			orderPhone    sql.NullString
			dateAdded     sql.NullString
			total         sql.NullString
			statusID      sql.NullInt64
			statusName    sql.NullString
			customerPhone sql.NullString
		)

		err := rows.Scan(&id, &firstName, &lastName, &orderPhone, &dateAdded, &total, &statusID, &statusName, &customerPhone)
		if err != nil {
			return nil, err
		}

		phone := orderPhone.String
		if phone == "" {
			phone = customerPhone.String
		}

		// Rows without a usable phone cannot receive a WhatsApp message
		if len(strings.TrimSpace(phone)) < 10 {
			continue
		}

		order := entity.NewOrder(id, firstName.String, lastName.String, statusName.String, total.String, dateAdded.String, phone)
		if statusID.Valid {
			v := int(statusID.Int64)
			order.StatusID = &v
		}
		orders = append(orders, *order)
	}

	return orders, rows.Err()
}

// DebugRow is a thin projection for the diagnostics endpoint.
type DebugRow struct {
	OrderID   int    `json:"order_id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Telephone string `json:"telephone"`
}

// DebugInfo answers "does this order exist and does the table look sane",
// to diagnose connection and table-prefix problems.
type DebugInfo struct {
	OrderFound   bool       `json:"order_found"`
	Order        *DebugRow  `json:"order_data"`
	TotalOrders  int        `json:"total_orders"`
	MinOrderID   int        `json:"min_order_id"`
	MaxOrderID   int        `json:"max_order_id"`
	SampleOrders []DebugRow `json:"sample_orders"`
}

func (r *OrderRepository) DebugOrder(ctx context.Context, orderID int) (*DebugInfo, error) {
	info := &DebugInfo{}

	row := r.DB.QueryRowContext(ctx,
		"SELECT order_id, firstname, lastname, telephone FROM "+tablePrefix+"order WHERE order_id = ? LIMIT 1", orderID)

	var d DebugRow
	var firstName, lastName, telephone sql.NullString
	err := row.Scan(&d.OrderID, &firstName, &lastName, &telephone)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if err == nil {
		d.FirstName, d.LastName, d.Telephone = firstName.String, lastName.String, telephone.String
		info.OrderFound = true
		info.Order = &d
	}

	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(MIN(order_id), 0), COALESCE(MAX(order_id), 0) FROM "+tablePrefix+"order").
		Scan(&info.TotalOrders, &info.MinOrderID, &info.MaxOrderID)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT order_id, firstname, lastname, telephone FROM "+tablePrefix+"order ORDER BY order_id DESC LIMIT 5")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s DebugRow
		var fn, ln, tel sql.NullString
		if err := rows.Scan(&s.OrderID, &fn, &ln, &tel); err != nil {
			return nil, err
		}
		s.FirstName, s.LastName, s.Telephone = fn.String, ln.String, tel.String
		info.SampleOrders = append(info.SampleOrders, s)
	}

	return info, rows.Err()
}
