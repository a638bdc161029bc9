package handlers

import (
	"net/url"

	"catalog/internal/apperror"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes on router. Static segments are
// registered before the id routes, and ids must be integers.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/count", h.HandleCountProducts)
	productRoutes.Get("/name/:name", h.HandleGetProductsByName)
	productRoutes.Get("/:id<int>", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id<int>", h.HandleUpdateProduct)
	productRoutes.Delete("/:id<int>", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.service.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleGetProductsByName retrieves the products whose name contains the
// path segment, ignoring case.
func (h *ProductHandler) HandleGetProductsByName(c *fiber.Ctx) error {
	name := c.Params("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	products, err := h.service.FindByName(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleCountProducts returns the number of products.
func (h *ProductHandler) HandleCountProducts(c *fiber.Ctx) error {
	count, err := h.service.Count(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	fields, err := models.ParseRawFields(c.Body())
	if err != nil {
		return apperror.BadRequest(err)
	}
	product, err := h.service.Create(c.UserContext(), fields)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites the fields present in the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	fields, err := models.ParseRawFields(c.Body())
	if err != nil {
		return apperror.BadRequest(err)
	}
	product, err := h.service.Update(c.UserContext(), id, fields)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// productID reads the id route parameter. Ids below 1 can never exist.
func productID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.ErrNotFound
	}
	if id < 1 {
		return 0, apperror.NotFound("product not found with id: %d", id)
	}
	return uint(id), nil
}
