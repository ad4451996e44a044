package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var ErrMissingRequired = errors.New("missing required configuration")

const tagNotBlank = "notblank"

type Config struct {
	AdminUsername string `env:"ADMIN_USERNAME" validate:"required,notblank"`
	AdminPassword string `env:"ADMIN_PASSWORD" validate:"required,notblank"`
	SessionSecret string `env:"SESSION_SECRET" validate:"required,notblank"`

	API1URL      string `env:"API1_URL" validate:"required,notblank,url"`
	API1Username string `env:"API1_USERNAME" validate:"required,notblank"`
	API1Password string `env:"API1_PASSWORD" validate:"required,notblank"`
	API1Sender   string `env:"API1_SENDER" validate:"required,notblank"`
	API1CD       string `env:"API1_CD" validate:"required,notblank"`
	API1Int      string `env:"API1_INT" validate:"required,notblank"`

	API2URL      string `env:"API2_URL" validate:"required,notblank,url"`
	API2Username string `env:"API2_USERNAME" validate:"required,notblank"`
	API2Password string `env:"API2_PASSWORD" validate:"required,notblank"`
	API2Type     string `env:"API2_TYPE" validate:"required,notblank"`

	RedisURL          string `env:"REDIS_URL"`
	SessionTTLMinutes int    `env:"SESSION_TTL_MINUTES,default=720" validate:"gt=0"`
	CookieSecure      bool   `env:"COOKIE_SECURE,default=false"`
	APIPort           int    `env:"API_PORT,default=8080"`
	LogLevel          string `env:"LOG_LEVEL,default=info"`
}

// StandardProviderConfig holds the fixed fields of the API 1 gateway.
type StandardProviderConfig struct {
	URL      string
	Username string
	Password string
	Sender   string
	CD       string
	Int      string
}

// FixedFields returns a new map on every call so callers may extend it freely.
func (c StandardProviderConfig) FixedFields() map[string]string {
	return map[string]string{
		"username": c.Username,
		"pass":     c.Password,
		"sender":   c.Sender,
		"cd":       c.CD,
		"int":      c.Int,
	}
}

// SMPPProviderConfig holds the fixed fields of the API 2 gateway.
type SMPPProviderConfig struct {
	URL         string
	Username    string
	Password    string
	MessageType string
}

func (c SMPPProviderConfig) FixedFields() map[string]string {
	return map[string]string{
		"username":     c.Username,
		"password":     c.Password,
		"message-type": c.MessageType,
	}
}

// Load reads an optional .env file, then the process environment.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return LoadFromEnviron()
}

// loadDotEnv applies the given env files, .env by default. A missing file is
// not an error; an unreadable or malformed one is.
func loadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func LoadFromEnviron() (*Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	missing := make([]string, 0, len(validationErrs))
	invalid := make([]string, 0)
	for _, fe := range validationErrs {
		if fe.Tag() == "required" || fe.Tag() == tagNotBlank {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
}

func (c *Config) Standard() StandardProviderConfig {
	return StandardProviderConfig{
		URL:      c.API1URL,
		Username: c.API1Username,
		Password: c.API1Password,
		Sender:   c.API1Sender,
		CD:       c.API1CD,
		Int:      c.API1Int,
	}
}

func (c *Config) SMPP() SMPPProviderConfig {
	return SMPPProviderConfig{
		URL:         c.API2URL,
		Username:    c.API2Username,
		Password:    c.API2Password,
		MessageType: c.API2Type,
	}
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// newValidator reports fields by their environment variable name and adds
// notblank, which rejects whitespace-only values.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(tagNotBlank, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}
