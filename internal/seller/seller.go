package seller

import "errors"

var ErrNotFound = errors.New("seller not found")

// Payout is the payout routing metadata attached to bank-transfer orders so
// the platform can settle with the seller later.
type Payout struct {
	SellerID    string `json:"sellerID"`
	ShopName    string `json:"shopName"`
	PayoutID    string `json:"payoutID"`
	BankName    string `json:"bankName"`
	AccountName string `json:"accountName"`
}

// Repository provides read access to seller payout metadata.
type Repository interface {
	GetPayout(sellerID string) (Payout, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetPayout(sellerID string) (Payout, error) {
	if sellerID == "" {
		return Payout{}, ErrNotFound
	}
	return s.repo.GetPayout(sellerID)
}
