package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fortify/backend/internal/application/usecase/breach"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/entrypoint/dto"
)

// BreachController handles the breached-account lookup endpoint.
type BreachController struct {
	lookupUseCase *breach.LookupBreachesUseCase
}

// NewBreachController creates a new breach controller instance.
func NewBreachController(lookupUseCase *breach.LookupBreachesUseCase) *BreachController {
	return &BreachController{
		lookupUseCase: lookupUseCase,
	}
}

// Lookup handles GET /breaches/:email requests.
func (c *BreachController) Lookup(ctx *gin.Context) {
	email := ctx.Param("email")

	output, err := c.lookupUseCase.Execute(ctx.Request.Context(), breach.LookupBreachesInput{Email: email})
	if err != nil {
		c.handleBreachError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreachListResponse(output.Breaches, output.Cached))
}

// handleBreachError handles breach errors and returns appropriate HTTP responses.
func (c *BreachController) handleBreachError(ctx *gin.Context, err error) {
	var breachErr *domainerror.BreachError
	if errors.As(err, &breachErr) {
		switch breachErr.Code {
		case domainerror.ErrCodeBreachInvalidEmail:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: breachErr.Message,
				Code:  string(breachErr.Code),
			})
		case domainerror.ErrCodeBreachLookupFailed:
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
				Error: breachErr.Message,
				Code:  string(breachErr.Code),
			})
		default:
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: breachErr.Message,
				Code:  string(breachErr.Code),
			})
		}
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
