package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/dto"
	"github.com/stridepath/goal_service/internal/services"
	"github.com/stridepath/goal_service/pkg/utils"
)

// respondServiceError maps the service error taxonomy to fixed status
// codes with generic messages. Unknown errors become a bare 500 so
// nothing internal leaks to the caller.
func respondServiceError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, services.ErrInactiveAccount):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "inactive account")
	case errors.Is(err, services.ErrUnauthenticated):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
	}
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Disabled: user.Disabled,
	}
}
