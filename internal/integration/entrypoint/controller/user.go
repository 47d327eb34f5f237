package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rental-marketplace/backend/internal/application/usecase/user"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
)

// UserController handles account endpoints.
type UserController struct {
	registerUseCase   *user.RegisterUserUseCase
	getUseCase        *user.GetUserUseCase
	becomeHostUseCase *user.BecomeHostUseCase
	verifyUseCase     *user.VerifyUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	registerUseCase *user.RegisterUserUseCase,
	getUseCase *user.GetUserUseCase,
	becomeHostUseCase *user.BecomeHostUseCase,
	verifyUseCase *user.VerifyUserUseCase,
) *UserController {
	return &UserController{
		registerUseCase:   registerUseCase,
		getUseCase:        getUseCase,
		becomeHostUseCase: becomeHostUseCase,
		verifyUseCase:     verifyUseCase,
	}
}

// Register handles POST /users requests.
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	input := user.RegisterUserInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Languages:   req.Languages,
		AsHost:      req.AsHost,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			badRequest(ctx, "Invalid date of birth, expected YYYY-MM-DD", err)
			return
		}
		input.DateOfBirth = &dob
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, output.User.ToJSON())
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), user.GetUserInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.User.ToJSON())
}

// BecomeHost handles POST /users/me/host requests.
func (c *UserController) BecomeHost(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.becomeHostUseCase.Execute(ctx.Request.Context(), user.BecomeHostInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.User.ToJSON())
}

// Verify handles POST /users/me/verifications requests.
func (c *UserController) Verify(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.VerifyUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.verifyUseCase.Execute(ctx.Request.Context(), user.VerifyUserInput{
		UserID: userID,
		Step:   user.VerificationStep(req.Step),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.VerifyUserResponse{
		VerificationStatus: output.User.VerificationStatus().String(),
		Advanced:           output.Advanced,
	})
}
