package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/service/activity"
	"perfect-cfw/internal/service/product"
)

const maxImageSize = 5 << 20 // 5 MiB

type ProductHandler struct {
	productService  product.Service
	activityService activity.Service
}

func NewProductHandler(productService product.Service, activityService activity.Service) *ProductHandler {
	return &ProductHandler{productService: productService, activityService: activityService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	var filter domain.ProductFilter

	if raw := c.Query("category"); raw != "" {
		category := domain.ProductCategory(raw)
		if !category.IsValid() {
			return middleware.BadRequest("Invalid product category")
		}
		filter.Category = &category
	}
	if raw := c.Query("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &v
		}
	}

	products, err := h.productService.ListActive(c.Context(), filter)
	if err != nil {
		return err
	}
	return ok(c, products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid product ID")
	}

	p, err := h.productService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return middleware.NotFound("Product not found")
		}
		return err
	}
	return ok(c, p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.productService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, product.ErrInvalidInput) {
			return middleware.BadRequest("Product name, price and a valid category are required")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionCreateProduct,
		"Created product "+p.Name, p.ID.String(), "product")

	return created(c, p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid product ID")
	}

	var input domain.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.productService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return middleware.NotFound("Product not found")
		}
		if errors.Is(err, product.ErrInvalidInput) {
			return middleware.BadRequest("Product name, price and a valid category are required")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionUpdateProduct,
		"Updated product "+p.Name, p.ID.String(), "product")

	return ok(c, p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid product ID")
	}

	if err := h.productService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return middleware.NotFound("Product not found")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionDeleteProduct,
		"Deleted product", id.String(), "product")

	return okMessage(c, "Product deleted", nil)
}

func (h *ProductHandler) UploadImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid product ID")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return middleware.BadRequest("An image file is required")
	}
	if fileHeader.Size > maxImageSize {
		return middleware.BadRequest("Image must be smaller than 5 MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Could not read uploaded file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	p, err := h.productService.UploadImage(c.Context(), id, fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return middleware.NotFound("Product not found")
		}
		if errors.Is(err, product.ErrStorageUnavailable) {
			return middleware.NewError(fiber.StatusServiceUnavailable, "Image storage is unavailable")
		}
		return err
	}

	recordActivity(c, h.activityService, domain.ActionUpdateProduct,
		"Uploaded image for product "+p.Name, p.ID.String(), "product")

	return ok(c, p)
}

func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.productService.Stats(c.Context())
	if err != nil {
		return err
	}
	return ok(c, stats)
}
