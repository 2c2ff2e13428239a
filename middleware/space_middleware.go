package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "ats-backend/lib/utils/auth-utils"
	apimodels "ats-backend/models/api"
)

// SpaceRequired refuses tokens that are not bound to a space.
func SpaceRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserSpace(ctx) == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}

func GetUserSpace(ctx *fiber.Ctx) string {
	return claimString(ctx, "space")
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func GetUserName(ctx *fiber.Ctx) string {
	return claimString(ctx, "name")
}

func claimString(ctx *fiber.Ctx, name string) string {
	claims := authutils.GetClaims(ctx)
	if value, exist := claims[name]; exist {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return ""
}
