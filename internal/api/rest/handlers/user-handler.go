package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stridepath/goal_service/internal/dto"
	"github.com/stridepath/goal_service/internal/helper"
	"github.com/stridepath/goal_service/internal/services"
	"github.com/stridepath/goal_service/pkg/utils"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, authRequired fiber.Handler) {
	app.Post("/token", h.Token)

	users := app.Group("/users")
	users.Post("/", h.Register)
	users.Post("/login", h.Login)
	users.Get("/me", authRequired, h.Me)
	users.Get("/:username", authRequired, h.GetUser)
}

// Token is the OAuth2-password-style login: form-encoded username and
// password, bearer token out.
func (h *UserHandler) Token(ctx *fiber.Ctx) error {
	input := dto.UserLogin{
		Username: ctx.FormValue("username"),
		Password: ctx.FormValue("password"),
	}
	if input.Username == "" || input.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	token, err := h.svc.Login(input)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}
	if err := helper.ValidateStruct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}
	if err := helper.ValidateStruct(requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	token, err := h.svc.Login(requestBody)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.auth.CurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toUserResponse(user))
}

func (h *UserHandler) GetUser(ctx *fiber.Ctx) error {
	username := ctx.Params("username")

	user, err := h.svc.GetByUsername(username)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toUserResponse(user))
}
