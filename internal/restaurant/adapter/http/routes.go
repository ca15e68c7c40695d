package http

import (
	"github.com/gofiber/fiber/v2"
)

// Route binds one method and path pattern to exactly one handler.
type Route struct {
	Method string
	Path   string
	// Guarded routes are owner-scoped and get the session guard when it is enabled.
	Guarded bool
	Handler fiber.Handler
}

// Routes returns the canonical route table.
func (h *RestaurantHTTPHandler) Routes() []Route {
	routes := []Route{
		{fiber.MethodGet, "/foods", false, h.ListFoods},
		{fiber.MethodGet, "/all-foods", false, h.SearchFoods},
		{fiber.MethodGet, "/foods/:id", false, h.GetFood},
		{fiber.MethodPost, "/foods", true, h.CreateFood},
		{fiber.MethodGet, "/food/:email", true, h.ListFoodsByOwner},
		{fiber.MethodPut, "/foods/:id", true, h.UpdateFood},
		{fiber.MethodDelete, "/foods/:id", true, h.DeleteFood},

		{fiber.MethodPost, "/orders", true, h.PlaceOrder},
		{fiber.MethodGet, "/orders", true, h.ListOrders},
		{fiber.MethodGet, "/orders/:id", true, h.GetOrder},
		{fiber.MethodDelete, "/order/:id", true, h.DeleteOrder},

		{fiber.MethodPost, "/gallery", true, h.AddPhoto},
		{fiber.MethodGet, "/gallery", false, h.ListPhotos},

		{fiber.MethodGet, "/users", false, h.ListUsers},
		{fiber.MethodPost, "/users", true, h.CreateUser},
	}
	if h.feed != nil {
		routes = append(routes, Route{fiber.MethodGet, "/ws/orders", true, h.OrderFeed()})
	}
	return routes
}

// RegisterRoutes mounts routes on router. When guard is non-nil it runs before
// every Guarded route; with a nil guard no route is guarded.
func RegisterRoutes(router fiber.Router, routes []Route, guard fiber.Handler) {
	for _, r := range routes {
		if r.Guarded && guard != nil {
			router.Add(r.Method, r.Path, guard, r.Handler)
			continue
		}
		router.Add(r.Method, r.Path, r.Handler)
	}
}
