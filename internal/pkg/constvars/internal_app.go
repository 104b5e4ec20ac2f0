package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_CALLER_ID_KEY  ContextKey = "caller_id"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
