package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	SearchProvidersSuccessMessage     = "provider directory search completed"
	GetRegistryEntriesSuccessMessage  = "get registry entries successfully"
	UpsertRegistryEntrySuccessMessage = "registry entry saved successfully"
	EnqueueProbeSuccessMessage        = "connectivity probe enqueued"
	DeactivateEntrySuccessMessage     = "registry entry deactivated"
)
