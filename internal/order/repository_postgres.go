package order

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `"orderID", "userID", "sellerID", customer, items, subtotal, "shipCost", "codFee", total, "paymentMethod", proof, "sellerMeta", status, "shippingNumber", "createdAt", "updatedAt"`

func (r *PostgresRepository) Create(req CreateRequest) (Order, error) {
	customerJSON, err := json.Marshal(map[string]any{
		"name":    req.BuyerName,
		"phone":   req.BuyerPhone,
		"address": req.BuyerAddress,
	})
	if err != nil {
		return Order{}, err
	}
	itemsJSON, err := json.Marshal(req.Items)
	if err != nil {
		return Order{}, err
	}

	var proofJSON, metaJSON any
	if req.Proof != nil {
		b, err := json.Marshal(req.Proof)
		if err != nil {
			return Order{}, err
		}
		proofJSON = string(b)
	}
	if req.SellerMeta != nil {
		b, err := json.Marshal(req.SellerMeta)
		if err != nil {
			return Order{}, err
		}
		metaJSON = string(b)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	var sellerID any
	if req.SellerID != nil {
		sellerID = *req.SellerID
	}

	var orderID int
	err = r.db.QueryRow(`INSERT INTO orders ("userID", "sellerID", customer, items, subtotal, "shipCost", "codFee", total, "paymentMethod", proof, "sellerMeta", status, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING "orderID"`,
		req.UserID, sellerID, string(customerJSON), string(itemsJSON),
		req.Amounts.Subtotal, req.Amounts.ShipCost, req.Amounts.CODFee, req.Amounts.Total,
		req.PaymentMethod, proofJSON, metaJSON, string(StatusPending), now, now).Scan(&orderID)
	if err != nil {
		return Order{}, err
	}

	return Order{
		OrderID:       orderID,
		OrderNumber:   FormatOrderNumber(orderID),
		UserID:        req.UserID,
		SellerID:      req.SellerID,
		BuyerName:     req.BuyerName,
		BuyerPhone:    req.BuyerPhone,
		BuyerAddress:  req.BuyerAddress,
		Items:         req.Items,
		Amounts:       req.Amounts,
		PaymentMethod: req.PaymentMethod,
		Proof:         req.Proof,
		SellerMeta:    req.SellerMeta,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update applies whichever fields are present and returns the updated row.
func (r *PostgresRepository) Update(orderID int, upd UpdateRequest) (Order, error) {
	sets := []string{}
	args := []any{}
	idx := 1

	if upd.Status != nil {
		sets = append(sets, fmt.Sprintf(`status = $%d`, idx))
		args = append(args, string(*upd.Status))
		idx++
	}
	if upd.ShippingNumber != nil {
		sets = append(sets, fmt.Sprintf(`"shippingNumber" = $%d`, idx))
		args = append(args, *upd.ShippingNumber)
		idx++
	}
	if len(sets) == 0 {
		return r.GetByID(orderID)
	}

	sets = append(sets, fmt.Sprintf(`"updatedAt" = $%d`, idx))
	args = append(args, time.Now().UTC().Format(time.RFC3339))
	idx++
	args = append(args, orderID)

	query := fmt.Sprintf(`UPDATE orders SET %s WHERE "orderID" = $%d RETURNING %s`,
		strings.Join(sets, ", "), idx, orderColumns)

	row := r.db.QueryRow(query, args...)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) GetByID(orderID int) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE "orderID" = $1`, orderID)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) List(f Filter) ([]Order, error) {
	where := []string{}
	args := []any{}
	idx := 1

	if len(f.IDs) > 0 {
		where = append(where, fmt.Sprintf(`"orderID" = ANY($%d::int[])`, idx))
		args = append(args, pq.Array(f.IDs))
		idx++
	}
	if f.SellerID != nil {
		where = append(where, fmt.Sprintf(`"sellerID" = $%d`, idx))
		args = append(args, *f.SellerID)
		idx++
	}
	if f.UserID != nil {
		where = append(where, fmt.Sprintf(`"userID" = $%d`, idx))
		args = append(args, *f.UserID)
		idx++
	}
	if f.BuyerPhone != nil {
		// phone may live under any of the legacy customer keys
		where = append(where, fmt.Sprintf(`(customer->>'phone' = $%d OR customer->>'tel' = $%d OR customer->>'phoneNumber' = $%d)`, idx, idx, idx))
		args = append(args, *f.BuyerPhone)
		idx++
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY "orderID"`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) Delete(orderID int) error {
	res, err := r.db.Exec(`DELETE FROM orders WHERE "orderID" = $1`, orderID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrder reads one row and flattens the customer jsonb to the top-level
// buyer fields regardless of which legacy keys the record was stored with.
func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var sellerID, shippingNumber, status, method, createdAt, updatedAt sql.NullString
	var customerJSON, itemsJSON []byte
	var proofJSON, metaJSON sql.NullString

	err := row.Scan(&ord.OrderID, &ord.UserID, &sellerID, &customerJSON, &itemsJSON,
		&ord.Amounts.Subtotal, &ord.Amounts.ShipCost, &ord.Amounts.CODFee, &ord.Amounts.Total,
		&method, &proofJSON, &metaJSON, &status, &shippingNumber, &createdAt, &updatedAt)
	if err != nil {
		return Order{}, err
	}

	ord.OrderNumber = FormatOrderNumber(ord.OrderID)
	if sellerID.Valid {
		ord.SellerID = &sellerID.String
	}
	if shippingNumber.Valid && shippingNumber.String != "" {
		ord.ShippingNumber = &shippingNumber.String
	}
	ord.Status = Status(status.String)
	ord.PaymentMethod = method.String
	ord.CreatedAt = createdAt.String
	ord.UpdatedAt = updatedAt.String

	if len(customerJSON) > 0 {
		raw := map[string]any{}
		if err := json.Unmarshal(customerJSON, &raw); err == nil {
			ord.BuyerName, ord.BuyerPhone, ord.BuyerAddress = NormalizeBuyer(raw)
		}
	}
	if len(itemsJSON) > 0 {
		json.Unmarshal(itemsJSON, &ord.Items)
	}
	if proofJSON.Valid && proofJSON.String != "" {
		var p PaymentProof
		if err := json.Unmarshal([]byte(proofJSON.String), &p); err == nil {
			ord.Proof = &p
		}
	}
	if metaJSON.Valid && metaJSON.String != "" {
		var m SellerMeta
		if err := json.Unmarshal([]byte(metaJSON.String), &m); err == nil {
			ord.SellerMeta = &m
		}
	}

	return ord, nil
}
