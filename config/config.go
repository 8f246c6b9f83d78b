package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Port string `envconfig:"PORT" default:"8000"`

	// Database
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"` // postgres, mysql or sqlite
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Auth
	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL   time.Duration `envconfig:"TOKEN_TTL" default:"1h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	// Uploaded professional documents
	StorageBackend      string `envconfig:"STORAGE_BACKEND" default:"local"` // local or cloudinary
	UploadDir           string `envconfig:"UPLOAD_DIR" default:"uploads"`
	CloudinaryCloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `envconfig:"CLOUDINARY_FOLDER" default:"professional-documents"`

	// Booking events
	RedisAddr    string `envconfig:"REDIS_ADDR"`
	RedisChannel string `envconfig:"REDIS_CHANNEL" default:"bookings"`

	// Mail
	SMTPHost  string `envconfig:"SMTP_HOST"`
	SMTPPort  int    `envconfig:"SMTP_PORT" default:"587"`
	EmailUser string `envconfig:"EMAIL_USER"`
	EmailPass string `envconfig:"EMAIL_PASS"`

	// Seeded administrator, also the digest recipient
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Pending-request digest; empty disables the job
	DigestCron string `envconfig:"DIGEST_CRON"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// MailEnabled reports whether SMTP settings are present.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.EmailUser != ""
}
