package config

import "time"

// Config collects every runtime setting of the service. Values are parsed
// from the environment with the ACADEMY prefix (e.g. ACADEMY_WEB_ADDRESS).
type Config struct {
	Web    Web
	DB     DB
	Auth   Auth
	Stripe Stripe
	Cors   Cors
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:5000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost:5432"`
	Name       string `conf:"default:academy"`
	DisableTLS bool   `conf:"default:true"`
}

type Auth struct {
	// Secret signs session tokens. Tokens issued with a different
	// secret are rejected as unauthorized.
	Secret      string        `conf:"default:change-me,mask"`
	TokenExpiry time.Duration `conf:"default:168h"`
	Issuer      string        `conf:"default:academy"`
}

type Stripe struct {
	APISecret string `conf:"mask"`
}

type Cors struct {
	Origin string `conf:"default:*"`
}
