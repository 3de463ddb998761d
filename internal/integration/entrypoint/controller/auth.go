// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fortify/backend/internal/application/usecase/verification"
	domainerror "github.com/fortify/backend/internal/domain/error"
	"github.com/fortify/backend/internal/integration/entrypoint/dto"
)

// AuthController handles account registration, login and email verification
// endpoints.
type AuthController struct {
	signupUseCase      *verification.SignupUseCase
	loginUseCase       *verification.LoginUseCase
	verifyEmailUseCase *verification.VerifyEmailUseCase
	resendCodeUseCase  *verification.ResendCodeUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	signupUseCase *verification.SignupUseCase,
	loginUseCase *verification.LoginUseCase,
	verifyEmailUseCase *verification.VerifyEmailUseCase,
	resendCodeUseCase *verification.ResendCodeUseCase,
) *AuthController {
	return &AuthController{
		signupUseCase:      signupUseCase,
		loginUseCase:       loginUseCase,
		verifyEmailUseCase: verifyEmailUseCase,
		resendCodeUseCase:  resendCodeUseCase,
	}
}

// Signup handles POST /auth/signup requests.
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := verification.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := c.signupUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		// A dispatch failure still created the account; report it as a
		// partial success so the client can offer a resend.
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) && authErr.Code == domainerror.ErrCodeDispatchFailed && output != nil {
			ctx.JSON(http.StatusCreated, dto.SignupResponse{
				User:    dto.ToUserResponse(output.User),
				Message: "Account created, but the verification email could not be sent. Request a new code.",
			})
			return
		}
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SignupResponse{
		User:    dto.ToUserResponse(output.User),
		Message: "Account created. Check your inbox for the verification code.",
	})
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := verification.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// VerifyEmail handles POST /auth/verify requests.
func (c *AuthController) VerifyEmail(ctx *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := verification.VerifyEmailInput{
		Email: req.Email,
		Code:  req.Code,
	}

	output, err := c.verifyEmailUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// ResendCode handles POST /auth/resend requests.
func (c *AuthController) ResendCode(ctx *gin.Context) {
	var req dto.ResendCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := verification.ResendCodeInput{
		Email: req.Email,
	}

	output, err := c.resendCodeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: output.Message,
	})
}

// handleAuthError handles authentication errors and returns appropriate HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := c.getStatusCodeForAuthError(authErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *AuthController) getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeMalformedCode:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeAccountNotVerified:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeChallengeNotFound,
		domainerror.ErrCodeCodeMismatch,
		domainerror.ErrCodeCodeExpired:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeAlreadyVerified:
		return http.StatusConflict
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeDispatchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
