package http

import (
	"context"
	"net/http"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// AccountHeader carries the id of the acting account. Authentication itself
// is handled upstream at the gateway; the backend trusts the header.
const AccountHeader = "X-Account-ID"

const accountContextKey = "account"

// accountLoader loads the acting account for the request.
type accountLoader interface {
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)
}

// AccountMiddleware resolves the X-Account-ID header into the account and
// stores it on the request context. Requests without a valid account id are
// rejected before reaching the handlers.
func AccountMiddleware(accounts accountLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(AccountHeader)
			if header == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing " + AccountHeader + " header",
				})
			}

			id, err := kernel.UUIDFromString(header)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid " + AccountHeader + " header",
				})
			}

			acc, err := accounts.Get(ctx.Request().Context(), id)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "unknown account",
				})
			}

			ctx.Set(accountContextKey, acc)
			return next(ctx)
		}
	}
}

// requestAccount returns the account resolved by AccountMiddleware.
func requestAccount(ctx echo.Context) (*account.Account, bool) {
	acc, ok := ctx.Get(accountContextKey).(*account.Account)
	return acc, ok
}
