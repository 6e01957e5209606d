package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/wichananm65/marketplace-backend/internal/cart"
	"github.com/wichananm65/marketplace-backend/internal/checkout"
	"github.com/wichananm65/marketplace-backend/internal/config"
	"github.com/wichananm65/marketplace-backend/internal/order"
	"github.com/wichananm65/marketplace-backend/internal/seller"
	"github.com/wichananm65/marketplace-backend/internal/upload"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	bootstrapSchema(db)

	// user service is shared between auth and checkout (buyer defaults)
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo)
	cartHandler := cart.NewHandler(cartService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderService)

	sellerService := seller.NewService(seller.NewPostgresRepository(db))

	orchestrator := checkout.NewOrchestrator(orderService, sellerService, cartService)
	checkoutHandler := checkout.NewHandler(cartService, orchestrator, checkout.Rates{
		Standard: cfg.StandardShipRate,
		Express:  cfg.ExpressShipRate,
		CODFee:   cfg.CODFee,
		PayoutID: cfg.PayoutID,
	})

	uploadHandler := upload.NewHandler(cfg.UploadDir)

	userHandler.RegisterPublicRoutes(app)

	// make uploaded files (payment slips, shop images) public
	app.Static("/uploads", cfg.UploadDir)

	app.Use(checkMiddleware)
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	cartHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	uploadHandler.RegisterProtectedRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// bootstrapSchema creates the tables the service needs if they are missing.
func bootstrapSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
        "userId" SERIAL PRIMARY KEY,
        email TEXT UNIQUE NOT NULL,
        password TEXT NOT NULL,
        "firstName" TEXT,
        "lastName" TEXT,
        phone TEXT,
        address TEXT,
        cart jsonb NOT NULL DEFAULT '[]',
        "createAt" TEXT,
        "updateAt" TEXT
    )`); err != nil {
		panic(err)
	}
	// cart used to be a productID->qty map; line items live in a jsonb array now
	if _, err := db.Exec(`ALTER TABLE users ADD COLUMN IF NOT EXISTS cart jsonb NOT NULL DEFAULT '[]'`); err != nil {
		panic(err)
	}

	// one row per seller-grouped order; customer kept as jsonb because legacy
	// writers used several key spellings (normalized on read)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
        "orderID" SERIAL PRIMARY KEY,
        "userID" INT NOT NULL,
        "sellerID" TEXT,
        customer jsonb NOT NULL DEFAULT '{}',
        items jsonb NOT NULL DEFAULT '[]',
        subtotal numeric NOT NULL DEFAULT 0,
        "shipCost" numeric NOT NULL DEFAULT 0,
        "codFee" numeric NOT NULL DEFAULT 0,
        total numeric NOT NULL DEFAULT 0,
        "paymentMethod" TEXT,
        proof jsonb,
        "sellerMeta" jsonb,
        status TEXT,
        "shippingNumber" TEXT,
        "createdAt" TEXT,
        "updatedAt" TEXT
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`ALTER TABLE orders ADD COLUMN IF NOT EXISTS "shippingNumber" TEXT`); err != nil {
		panic(err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sellers (
        "sellerID" TEXT PRIMARY KEY,
        "shopName" TEXT,
        "payoutID" TEXT,
        "bankName" TEXT,
        "accountName" TEXT
    )`); err != nil {
		panic(err)
	}
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
