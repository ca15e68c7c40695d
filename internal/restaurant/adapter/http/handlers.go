package http

import (
	"context"

	"restaurant-management/internal/restaurant/domain/model"
	"restaurant-management/internal/restaurant/usecase"
	apperrors "restaurant-management/internal/shared/errors"
	"restaurant-management/internal/shared/logger"
	"restaurant-management/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// RestaurantHTTPHandler serves the food, order, gallery and user resources.
// Every handler performs one usecase call and writes the raw result; store
// errors are returned to the app's error handler unchanged.
type RestaurantHTTPHandler struct {
	foods   usecase.FoodUsecaseInterface
	orders  usecase.OrderUsecaseInterface
	gallery usecase.GalleryUsecaseInterface
	users   usecase.UserUsecaseInterface
	feed    *usecase.OrderFeed
	log     logger.Logger
}

// NewRestaurantHTTPHandler creates the resource handler set. feed may be nil,
// which disables the live order route.
func NewRestaurantHTTPHandler(
	foods usecase.FoodUsecaseInterface,
	orders usecase.OrderUsecaseInterface,
	gallery usecase.GalleryUsecaseInterface,
	users usecase.UserUsecaseInterface,
	feed *usecase.OrderFeed,
	log logger.Logger,
) *RestaurantHTTPHandler {
	if log == nil {
		log = logger.Noop()
	}
	return &RestaurantHTTPHandler{
		foods:   foods,
		orders:  orders,
		gallery: gallery,
		users:   users,
		feed:    feed,
		log:     log.WithComponent("restaurant_http"),
	}
}

// parseDocument decodes the request body as a JSON object regardless of the
// Content-Type header. An empty body is an empty document.
func parseDocument(c *fiber.Ctx) (model.Document, error) {
	doc := model.Document{}
	body := c.Body()
	if len(body) == 0 {
		return doc, nil
	}
	if err := c.App().Config().JSONDecoder(body, &doc); err != nil {
		return nil, apperrors.NewValidationError("request body must be a JSON object").
			WithCode("INVALID_BODY").
			WithCause(apperrors.ErrInvalidInput)
	}
	if doc == nil {
		doc = model.Document{}
	}
	return doc, nil
}

// operation tags the request context with the handler's operation name for logging.
func operation(c *fiber.Ctx, name string) context.Context {
	return utils.WithOperation(c.UserContext(), name)
}

// --- foods ---

// ListFoods handles GET /foods
func (h *RestaurantHTTPHandler) ListFoods(c *fiber.Ctx) error {
	docs, err := h.foods.ListFoods(operation(c, "foods.list"))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// SearchFoods handles GET /all-foods?search=
func (h *RestaurantHTTPHandler) SearchFoods(c *fiber.Ctx) error {
	docs, err := h.foods.SearchFoods(operation(c, "foods.search"), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// GetFood handles GET /foods/:id. An unknown id yields null.
func (h *RestaurantHTTPHandler) GetFood(c *fiber.Ctx) error {
	doc, err := h.foods.GetFood(operation(c, "foods.get"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// ListFoodsByOwner handles GET /food/:email
func (h *RestaurantHTTPHandler) ListFoodsByOwner(c *fiber.Ctx) error {
	docs, err := h.foods.ListFoodsByOwner(operation(c, "foods.by_owner"), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// CreateFood handles POST /foods
func (h *RestaurantHTTPHandler) CreateFood(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}
	res, err := h.foods.CreateFood(operation(c, "foods.create"), doc)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// UpdateFood handles PUT /foods/:id
func (h *RestaurantHTTPHandler) UpdateFood(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}
	res, err := h.foods.UpdateFood(operation(c, "foods.update"), c.Params("id"), doc)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// DeleteFood handles DELETE /foods/:id
func (h *RestaurantHTTPHandler) DeleteFood(c *fiber.Ctx) error {
	res, err := h.foods.DeleteFood(operation(c, "foods.delete"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// --- orders ---

// PlaceOrder handles POST /orders
func (h *RestaurantHTTPHandler) PlaceOrder(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}
	res, err := h.orders.PlaceOrder(operation(c, "orders.place"), doc)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ListOrders handles GET /orders
func (h *RestaurantHTTPHandler) ListOrders(c *fiber.Ctx) error {
	docs, err := h.orders.ListOrders(operation(c, "orders.list"))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// GetOrder handles GET /orders/:id. An unknown id yields null.
func (h *RestaurantHTTPHandler) GetOrder(c *fiber.Ctx) error {
	doc, err := h.orders.GetOrder(operation(c, "orders.get"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

// DeleteOrder handles DELETE /order/:id
func (h *RestaurantHTTPHandler) DeleteOrder(c *fiber.Ctx) error {
	res, err := h.orders.DeleteOrder(operation(c, "orders.delete"), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// --- gallery ---

// AddPhoto handles POST /gallery
func (h *RestaurantHTTPHandler) AddPhoto(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}
	res, err := h.gallery.AddPhoto(operation(c, "gallery.add"), doc)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ListPhotos handles GET /gallery
func (h *RestaurantHTTPHandler) ListPhotos(c *fiber.Ctx) error {
	docs, err := h.gallery.ListPhotos(operation(c, "gallery.list"))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

// --- users ---

// CreateUser handles POST /users
func (h *RestaurantHTTPHandler) CreateUser(c *fiber.Ctx) error {
	doc, err := parseDocument(c)
	if err != nil {
		return err
	}
	res, err := h.users.CreateUser(operation(c, "users.create"), doc)
	if err != nil {
		return err
	}
	return c.JSON(res)
}

// ListUsers handles GET /users
func (h *RestaurantHTTPHandler) ListUsers(c *fiber.Ctx) error {
	docs, err := h.users.ListUsers(operation(c, "users.list"))
	if err != nil {
		return err
	}
	return c.JSON(docs)
}
