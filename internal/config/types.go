package config

import "time"

type Config struct {
	APIURL         string        `env:"CODEASSIST_API_URL" envDefault:"http://localhost:8000"`
	Language       string        `env:"CODEASSIST_LANGUAGE" envDefault:"python"`
	RequestTimeout time.Duration `env:"CODEASSIST_TIMEOUT" envDefault:"60s"`
	ConnectTimeout time.Duration `env:"CODEASSIST_CONNECT_TIMEOUT" envDefault:"10s"`
	HeaderTimeout  time.Duration `env:"CODEASSIST_RESPONSE_HEADER_TIMEOUT" envDefault:"0s"` // 0 = bounded by CODEASSIST_TIMEOUT only
	IdleTimeout    time.Duration `env:"CODEASSIST_IDLE_CONN_TIMEOUT" envDefault:"90s"`
	RateLimit      float64       `env:"CODEASSIST_RATE_LIMIT" envDefault:"0"` // requests per second, 0 = unlimited
	RateBurst      int           `env:"CODEASSIST_RATE_BURST" envDefault:"1"`
	UserAgent      string        `env:"CODEASSIST_USER_AGENT" envDefault:"codeassist/1.0"`
	LogFile        string        `env:"CODEASSIST_LOG_FILE" envDefault:"codeassist.log"`
	Environment    string        `env:"ENVIRONMENT" envDefault:"development"`
}

type Flags struct {
	APIURL   string
	Language string
	Optimize bool
	Copy     bool
	File     string
	Args     []string
}
