package seller

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetPayout(sellerID string) (Payout, error) {
	var p Payout
	var shopName, payoutID, bankName, accountName sql.NullString
	err := r.db.QueryRow(`SELECT "sellerID", "shopName", "payoutID", "bankName", "accountName" FROM sellers WHERE "sellerID" = $1`, sellerID).
		Scan(&p.SellerID, &shopName, &payoutID, &bankName, &accountName)
	if err != nil {
		if err == sql.ErrNoRows {
			return Payout{}, ErrNotFound
		}
		return Payout{}, err
	}
	p.ShopName = shopName.String
	p.PayoutID = payoutID.String
	p.BankName = bankName.String
	p.AccountName = accountName.String
	return p, nil
}
