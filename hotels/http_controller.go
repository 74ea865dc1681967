package hotels

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the hotel CRUD endpoints
type Controller struct {
	Repo *Repository
}

func NewController(repo *Repository) *Controller {
	return &Controller{Repo: repo}
}

// GetAll handles GET /api/Hotels
func (h *Controller) GetAll(c *fiber.Ctx) error {
	hotels, err := h.Repo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}
	return c.JSON(hotels)
}

// Get handles GET /api/Hotels/:id
func (h *Controller) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid Id")
	}

	hotel, err := h.Repo.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid Id")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}

	return c.JSON(hotel)
}

// Create handles POST /api/Hotels
func (h *Controller) Create(c *fiber.Ctx) error {
	hotel := &Hotel{}
	if err := c.BodyParser(hotel); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	created, err := h.Repo.Create(c.Context(), hotel)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Rename handles PATCH /api/Hotels?id=&name=
func (h *Controller) Rename(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid Id")
	}

	if err := h.Repo.Rename(c.Context(), id, c.Query("name")); err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid Id")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/Hotels?id=
func (h *Controller) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid Id")
	}

	if err := h.Repo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, ErrHotelNotFound) {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid Id")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server Error"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes mounts the hotel endpoints on app behind the given guard
func RegisterRoutes(app *fiber.App, controller *Controller, guard fiber.Handler) {
	group := app.Group("/api/Hotels", guard)
	group.Get("/", controller.GetAll)
	group.Get("/:id", controller.Get)
	group.Post("/", controller.Create)
	group.Patch("/", controller.Rename)
	group.Delete("/", controller.Delete)
}
