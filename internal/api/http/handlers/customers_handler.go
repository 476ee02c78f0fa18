package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/customer-service/internal/api/dto"
	"github.com/spec-kit/customer-service/internal/auth"
	"github.com/spec-kit/customer-service/internal/domain"
	"github.com/spec-kit/customer-service/internal/service"
	apperrors "github.com/spec-kit/customer-service/pkg/util/errorutil"
)

// CustomersHandler manages customer endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// Create POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	customer, err := h.service.Create(c.Context(), actorID, service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// Get GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	customer, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Update PUT /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	customer, err := h.service.Update(c.Context(), actorID, c.Params("id"), service.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Delete DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Context(), actorID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.Context(), parseCustomerListQuery(c))
	if err != nil {
		return err
	}

	items := make([]dto.CustomerResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, customerResponse(&page.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.CustomerListResponse{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}})
}

// BulkCreate POST /customers/bulk.
func (h *CustomersHandler) BulkCreate(c *fiber.Ctx) error {
	actorID, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.BulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.BulkCreate(c.Context(), actorID, req.Count)
	if err != nil {
		return err
	}

	created := make([]dto.CustomerResponse, 0, len(result.Created))
	for i := range result.Created {
		created = append(created, customerResponse(&result.Created[i]))
	}
	itemErrors := make([]dto.BulkItemErrorResponse, 0, len(result.Errors))
	for _, itemErr := range result.Errors {
		itemErrors = append(itemErrors, dto.BulkItemErrorResponse{
			Index:   itemErr.Index,
			Message: itemErr.Message,
		})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.BulkCreateResponse{
		SuccessCount:     result.SuccessCount,
		FailureCount:     result.FailureCount,
		CreatedCustomers: created,
		Errors:           itemErrors,
	}})
}

func requireActor(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return "", apperrors.NewUnauthorized("account required")
	}
	return principal.Account.ID, nil
}

func parseCustomerListQuery(c *fiber.Ctx) service.CustomerListInput {
	input := service.CustomerListInput{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		input.SearchTerm = &search
	}
	if email := strings.TrimSpace(c.Query("email")); email != "" {
		input.Email = &email
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		input.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		input.CreatedTo = to
	}
	input.Page = parseInt(c.Query("page"), 1)
	input.PageSize = parseInt(c.Query("page_size"), 20)
	return input
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
		CreatedBy: customer.CreatedBy,
		UpdatedBy: customer.UpdatedBy,
	}
}
