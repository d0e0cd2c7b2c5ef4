package database

// Order archive queries
const (
	InsertArchivedOrderSQL = `
		INSERT INTO archived_orders (number, dish, table_number, seat, server, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (number) DO NOTHING`

	UpdateArchivedOrderStatusSQL = `
		UPDATE archived_orders SET status = $1, changed_by = $2, reason = $3, updated_at = NOW()
		WHERE number = $4`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_number, old_status, new_status, changed_by, reason)
		VALUES ($1, $2, $3, $4, $5)`

	GetArchivedOrderSQL = `
		SELECT number, dish, table_number, seat, server, price, status, changed_by, reason, created_at, updated_at
		FROM archived_orders WHERE number = $1`
)

// Payment archive queries
const (
	InsertPaymentSQL = `
		INSERT INTO archived_payments (paid_on, server, table_number, payment)
		VALUES ($1, $2, $3, $4)`

	GetPaymentsByDateSQL = `
		SELECT paid_on, server, table_number, payment
		FROM archived_payments
		WHERE paid_on = $1
		ORDER BY id ASC`
)
