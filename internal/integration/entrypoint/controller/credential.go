package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fortify/backend/internal/application/usecase/credential"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/entrypoint/dto"
)

// CredentialController handles the stored-credential endpoints.
type CredentialController struct {
	saveUseCase   *credential.SaveCredentialUseCase
	listUseCase   *credential.ListCredentialsUseCase
	deleteUseCase *credential.DeleteCredentialUseCase
}

// NewCredentialController creates a new credential controller instance.
func NewCredentialController(
	saveUseCase *credential.SaveCredentialUseCase,
	listUseCase *credential.ListCredentialsUseCase,
	deleteUseCase *credential.DeleteCredentialUseCase,
) *CredentialController {
	return &CredentialController{
		saveUseCase:   saveUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Save handles POST /credentials requests.
func (c *CredentialController) Save(ctx *gin.Context) {
	var req dto.SaveCredentialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := credential.SaveCredentialInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCredentialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCredentialResponse(output.Credential))
}

// List handles GET /credentials requests. The account email comes from the
// email query parameter.
func (c *CredentialController) List(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "email query parameter is required",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), credential.ListCredentialsInput{Email: email})
	if err != nil {
		c.handleCredentialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCredentialListResponse(output.Credentials))
}

// Delete handles DELETE /credentials/:id requests.
func (c *CredentialController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "invalid credential id",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), credential.DeleteCredentialInput{ID: id}); err != nil {
		c.handleCredentialError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Credential deleted"})
}

// handleCredentialError handles credential errors and returns appropriate HTTP responses.
func (c *CredentialController) handleCredentialError(ctx *gin.Context, err error) {
	var pwdErr *domainerror.PasswordError
	if errors.As(err, &pwdErr) {
		switch pwdErr.Code {
		case domainerror.ErrCodeCredentialNotFound:
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: pwdErr.Message,
				Code:  string(pwdErr.Code),
			})
		case domainerror.ErrCodeEmptyPassword:
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
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

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) && authErr.Code == domainerror.ErrCodeUserNotFound {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
