package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingUserAgentKey   = "user_agent"
	LoggingQueryKey       = "query"
	LoggingStatusCodeKey  = "status_code"
	LoggingDurationKey    = "duration"
	LoggingSuccessKey     = "success"
	LoggingNPIKey         = "npi"
	LoggingSourceNameKey  = "source_name"
	LoggingSourceCountKey = "source_count"
	LoggingEntryCountKey  = "entry_count"
	LoggingRedisKey       = "redis_key"
	LoggingProbeJobIDKey  = "probe_job_id"
	LoggingLockValueKey   = "lock_value"

	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingEntryIDKey            = "entry_id"
	LoggingEndpointURLKey        = "endpoint_url"
	LoggingOrganizationNameKey   = "organization_name"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
)
