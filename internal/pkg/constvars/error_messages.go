package constvars

// Client-facing messages. Kept deliberately vague for anything internal.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientInvalidNPIFormat              = "invalid NPI format, must be 10 digits"
	ErrClientRegistryEntryNotFound         = "directory source not found"
	ErrClientRegistryUnavailable           = "provider directory registry is unavailable"
)

// Developer-facing messages, surfaced only outside production.
const (
	ErrDevInvalidInput               = "invalid input"
	ErrDevValidationFailed           = "validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON          = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseTime            = "cannot parse time into the given format"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"
	ErrDevMissingRequestID           = "request id missing from context"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded while processing request"
	ErrDevServerProcess              = "server failed while processing request"

	ErrDevCreateHTTPRequest = "failed to create HTTP request"
	ErrDevSendHTTPRequest   = "failed to send HTTP request"

	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthAPIKeyInvalid         = "invalid or missing api key"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"

	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data on redis"
	ErrDevRedisDeleteData = "failed to delete data on redis"
	ErrDevRedisSetNX      = "failed to set data with NX semantics on redis"
	ErrDevRedisUnlock     = "failed to release distributed lock on redis"

	ErrDevQueuePublishMessage = "failed to publish message to queue %s"
	ErrDevQueueConsumeMessage = "failed to consume message from queue %s"

	ErrDevMinioFailedToCreateObject = "failed to create object in bucket %s"

	ErrDevDirectorySearchFailed      = "directory source %s search failed"
	ErrDevDirectoryDecodeBundle      = "failed to decode FHIR bundle from directory source %s"
	ErrDevRegistryEntryNotFound      = "registry entry not found"
	ErrDevRegistryNaturalKeyConflict = "registry entry with same organization name and endpoint already exists"
	ErrDevBaselineRecordNotFound     = "baseline record not found for caller"
)

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"url":      "must be a valid URL",
	"uuid":     "must be a valid UUID",
	"boolean":  "must be a boolean",
	"npi":      "must be a valid 10-digit NPI",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"len":   true,
	"oneof": true,
}
