package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fortify/backend/internal/application/usecase/password"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/entrypoint/dto"
)

// PasswordController handles exposure check and suggestion endpoints.
type PasswordController struct {
	checkExposureUseCase       *password.CheckExposureUseCase
	generateSuggestionsUseCase *password.GenerateSuggestionsUseCase
}

// NewPasswordController creates a new password controller instance.
func NewPasswordController(
	checkExposureUseCase *password.CheckExposureUseCase,
	generateSuggestionsUseCase *password.GenerateSuggestionsUseCase,
) *PasswordController {
	return &PasswordController{
		checkExposureUseCase:       checkExposureUseCase,
		generateSuggestionsUseCase: generateSuggestionsUseCase,
	}
}

// CheckExposure handles POST /passwords/check requests.
func (c *PasswordController) CheckExposure(ctx *gin.Context) {
	var req dto.CheckExposureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyPassword),
		})
		return
	}

	input := password.CheckExposureInput{
		Password:    req.Password,
		DebounceKey: req.DebounceKey,
	}

	output, err := c.checkExposureUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePasswordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CheckExposureResponse{
		Count:    output.Count,
		Strength: output.Strength,
	})
}

// GenerateSuggestions handles POST /passwords/suggestions requests.
func (c *PasswordController) GenerateSuggestions(ctx *gin.Context) {
	var req dto.SuggestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeEmptyPassword),
		})
		return
	}

	input := password.GenerateSuggestionsInput{
		Password: req.Password,
	}

	output, err := c.generateSuggestionsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePasswordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestionsResponse(output))
}

// handlePasswordError handles password errors and returns appropriate HTTP responses.
func (c *PasswordController) handlePasswordError(ctx *gin.Context, err error) {
	var pwdErr *domainerror.PasswordError
	if errors.As(err, &pwdErr) {
		switch pwdErr.Code {
		case domainerror.ErrCodeEmptyPassword:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: pwdErr.Message,
				Code:  string(pwdErr.Code),
			})
		case domainerror.ErrCodeCheckSuperseded:
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{
				Error: pwdErr.Message,
				Code:  string(pwdErr.Code),
			})
		case domainerror.ErrCodeExposureLookupFailed:
			ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{
				Error: pwdErr.Message,
				Code:  string(pwdErr.Code),
			})
		default:
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: pwdErr.Message,
				Code:  string(pwdErr.Code),
			})
		}
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
