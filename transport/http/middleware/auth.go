package middleware

import (
	"context"
	"errors"
	"net/http"

	"riverside/infras/jwt"
	"riverside/infras/otel"
	"riverside/shared/constant"
	"riverside/shared/failure"
	"riverside/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Session guards the routes of one booking draft.
type Session interface {
	Session(http.Handler) http.Handler
}

type sessionImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewSessionMiddleware(jwtService jwt.JWT, otel otel.Otel) Session {
	return &sessionImpl{
		jwtService: jwtService,
		otel:       otel,
	}
}

// Session requires a bearer token issued for the draft named in the path.
// A missing or invalid token is unauthorized; a valid token for another
// draft is forbidden. An accepted request gets a fresh token in the
// X-Session-Token header, since the request keeps the draft alive.
func (m *sessionImpl) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "session.middleware")

		draftID := chi.URLParam(request, constant.RequestParamID)

		scope.SetAttributes(map[string]any{
			"middleware.type": "session",
			"http.method":     request.Method,
			"booking.id":      draftID,
		})

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			err = failure.Unauthorized(err.Error())
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.Validate(tokenString)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Session has expired"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid session claims"
			default:
				message = "Invalid session token"
			}

			err = failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if claims.DraftID != draftID {
			log.Warn().Str("draft_id", draftID).Str("token_draft_id", claims.DraftID).Msg("session token used for another booking")

			response.WithError(writer, failure.SessionMismatch)

			scope.TraceError(failure.SessionMismatch)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyDraftID, claims.DraftID)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		if refreshed, err := m.jwtService.Issue(claims.DraftID); err != nil {
			log.Warn().Err(err).Str("draft_id", claims.DraftID).Msg("failed to refresh session token")
		} else {
			writer.Header().Set(constant.RequestHeaderSessionToken, refreshed.Token)
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}
