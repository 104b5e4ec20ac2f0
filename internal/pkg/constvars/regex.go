package constvars

const (
	RegexNPI = `^\d{10}$`
)
