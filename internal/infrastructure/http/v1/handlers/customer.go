package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradebook/internal/core/apperror"
	"tradebook/internal/core/cqs"
	"tradebook/internal/domain/customers"
	"tradebook/internal/infrastructure/http/v1/dto"
)

// CustomerHandler exposes the customer commands and queries over HTTP.
// Command handlers arrive already wrapped in the transactional decorator; the
// HTTP layer knows nothing about transactions beyond the scope middleware.
type CustomerHandler struct {
	*BaseHandler

	add       cqs.CommandHandler[*customers.AddCustomer]
	move      cqs.CommandHandler[*customers.MoveCustomer]
	byCountry cqs.QueryHandler[customers.CustomersByCountry, []*customers.Customer]
	byID      cqs.QueryHandler[customers.CustomerByID, *customers.Customer]
}

// NewCustomerHandler creates the customer HTTP handler.
func NewCustomerHandler(
	base *BaseHandler,
	add cqs.CommandHandler[*customers.AddCustomer],
	move cqs.CommandHandler[*customers.MoveCustomer],
	byCountry cqs.QueryHandler[customers.CustomersByCountry, []*customers.Customer],
	byID cqs.QueryHandler[customers.CustomerByID, *customers.Customer],
) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler: base,
		add:         add,
		move:        move,
		byCountry:   byCountry,
		byID:        byID,
	}
}

// Create handles POST /customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cmd := req.ToCommand()
	if err := h.add.Handle(c.Request.Context(), cmd); err != nil {
		h.Error(c, err)
		return
	}

	c.Header("Location", "/api/v1/customers/"+cmd.ID.String())
	c.JSON(http.StatusCreated, gin.H{"id": cmd.ID.String()})
}

// Move handles PUT /customers/:id/address.
func (h *CustomerHandler) Move(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customer id"))
		return
	}

	var req dto.MoveCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cmd := &customers.MoveCustomer{
		ID:      id,
		Country: req.Country,
		City:    req.City,
		Street:  req.Street,
	}
	if err := h.move.Handle(c.Request.Context(), cmd); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByCountry handles GET /customers?country=X.
// A non-empty result maps to 200, exactly zero rows to 204 No Content.
func (h *CustomerHandler) ListByCountry(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		h.Error(c, apperror.NewValidation("country query parameter is required"))
		return
	}

	result, err := h.byCountry.Handle(c.Request.Context(), customers.CustomersByCountry{Country: country})
	if err != nil {
		h.Error(c, err)
		return
	}

	if len(result) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": dto.FromCustomers(result)})
}

// Get handles GET /customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid customer id"))
		return
	}

	customer, err := h.byID.Handle(c.Request.Context(), customers.CustomerByID{ID: id})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCustomer(customer))
}
