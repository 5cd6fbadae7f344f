package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stridepath/goal_service/internal/services"
	"github.com/stridepath/goal_service/pkg/utils"
)

// AuthMiddleware resolves the bearer token on each request to a user
// record and attaches it to the request context. requireActive rejects
// disabled accounts once the identity is established.
func AuthMiddleware(userSvc services.UserService, requireActive bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))

		user, err := userSvc.ResolveToken(header, requireActive)
		if err != nil {
			if errors.Is(err, services.ErrInactiveAccount) {
				return utils.ResponseError(ctx, fiber.StatusUnauthorized, "inactive account")
			}
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthenticated")
		}

		ctx.Locals("userID", user.ID)
		ctx.Locals("user", user)
		return ctx.Next()
	}
}
