package constant

import (
	"time"
)

// Context key types to avoid collisions
type contextKey string

const (
	ContextKeyDraftID contextKey = "draft_id"
	ContextKeyTokenID contextKey = "token_id"
)

const (
	RequestParamID      = "id"
	RequestParamSlug    = "slug"
	RequestParamExtraID = "extraID"
)

const (
	RequestParamCategory  = "category"
	RequestParamMinGuests = "min_guests"
	RequestParamMinPrice  = "min_price"
	RequestParamMaxPrice  = "max_price"
	RequestParamAmenities = "amenities"
	RequestParamAvailable = "available"
	RequestParamFeatured  = "featured"
	RequestParamSort      = "sort"
)

const (
	DateFormat    = time.RFC3339
	DayFormat     = "2006-01-02"
	DayFormatSlim = "20060102"
)

const (
	OtelRepositoryScopeName = "repository"
	OtelServiceScopeName    = "service"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"
	OtelExternalScopeName   = "external"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderContentDisposition = "Content-Disposition"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderSessionToken       = "X-Session-Token"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	ConfirmerSimulated = "simulated"
	ConfirmerKafka     = "kafka"
)

const (
	Empty = ""
)
