package upload

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/marketplace-backend/internal/payment"
)

// Handler stores uploaded files (payment slips, product and shop images)
// under a local directory and hands back their public URLs.
type Handler struct {
	dir string
}

func NewHandler(dir string) *Handler {
	return &Handler{dir: dir}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/upload", h.uploadFile)
	app.Post("/api/v1/payments/proof", h.uploadProof)
}

func (h *Handler) uploadFile(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	urls := make([]string, 0)
	for _, files := range form.File {
		for _, file := range files {
			name := uuid.NewString() + filepath.Ext(file.Filename)
			if err := c.SaveFile(file, filepath.Join(h.dir, name)); err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
			}
			urls = append(urls, "/uploads/"+name)
		}
	}
	if len(urls) == 0 {
		return c.Status(fiber.StatusBadRequest).SendString("file is required")
	}

	return c.JSON(fiber.Map{"urls": urls})
}

// uploadProof stores a proof-of-payment slip and returns both its URL and the
// content fingerprint the client carries into checkout.
func (h *Handler) uploadProof(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "file is required"})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(h.dir, name)
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"url":         "/uploads/" + name,
		"fingerprint": payment.Fingerprint(b),
	})
}
