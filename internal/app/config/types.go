package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	InternalConfig struct {
		App    App
		Search Search
		Probe  Probe
		JWT    JWT
	}
	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		EndpointPrefix             string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
		SuperadminAPIKey           string
	}
	Search struct {
		SourceTimeoutInSeconds     int
		RoleLookupTimeoutInSeconds int
		RegistryCacheTTLInSeconds  int
	}
	Probe struct {
		Queue                string
		IntervalInSeconds    int
		BatchSize            int
		HTTPTimeoutInSeconds int
		FailureThreshold     int
		ReportBucketName     string
		LockTTLInSeconds     int
	}
	JWT struct {
		Secret string
	}
)
