package middleware

import (
	"context"
	"errors"
	"net/http"

	"mesa/infras/jwt"
	"mesa/infras/otel"
	"mesa/shared/constant"
	"mesa/shared/failure"
	"mesa/transport/http/response"
)

// Auth validates bearer tokens and seeds the request context with the
// caller's identity.
type Auth interface {
	Auth(http.Handler) http.Handler
	RequireRole(role string) func(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			err := failure.Unauthorized("missing authorization header")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("invalid authorization header format")
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "token has expired"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "invalid token claims"
			default:
				message = "invalid token"
			}

			unauthorized := failure.Unauthorized(message)
			scope.TraceError(unauthorized)
			response.WithError(writer, unauthorized)

			return
		}

		if claims.UserID == constant.Empty || claims.Email == constant.Empty {
			unauthorized := failure.Unauthorized("invalid token claims")
			scope.TraceError(unauthorized)
			response.WithError(writer, unauthorized)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequireRole gates a route group on the authenticated caller's role.
// Must run after Auth.
func (m *authImpl) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			callerRole, _ := request.Context().Value(constant.ContextKeyUserRole).(string)
			if callerRole != role {
				response.WithError(writer, failure.Forbidden("insufficient role"))

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
