package config

import (
	"os"

	"github.com/shopspring/decimal"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// PayoutID is the platform's merchant payment identifier embedded in
	// bank-transfer QR references when a seller has no payout route of its own.
	PayoutID string

	StandardShipRate decimal.Decimal
	ExpressShipRate  decimal.Decimal
	CODFee           decimal.Decimal

	UploadDir string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("MARKETPLACE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	return Config{
		Addr:             addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		PayoutID:         os.Getenv("PAYOUT_ID"),
		StandardShipRate: decimalEnv("SHIP_RATE_STANDARD", "45"),
		ExpressShipRate:  decimalEnv("SHIP_RATE_EXPRESS", "80"),
		CODFee:           decimalEnv("COD_FEE", "30"),
		UploadDir:        uploadDir,
	}
}

func decimalEnv(key, fallback string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		raw = fallback
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
