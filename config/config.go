package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

const envFileEnvName = "BOUTIQUE_ENV_FILE"

type Mongo struct {
	URI      string `envconfig:"MONGODB_URI" required:"true"`
	Database string `envconfig:"DATABASE_NAME" default:"boutique"`
	// Change streams need a replica set; turn off for a standalone dev server.
	Realtime bool `split_words:"true" default:"true"`
}

type Redis struct {
	URL          string `split_words:"true"`
	ReadTimeout  int    `split_words:"true" default:"3"`
	WriteTimeout int    `split_words:"true" default:"3"`
	DialTimeout  int    `split_words:"true" default:"5"`
}

type Storage struct {
	// "r2" or "gcs"
	Provider string `split_words:"true" default:"r2"`

	R2Bucket       string `envconfig:"R2_BUCKET"`
	R2AccessKeyID  string `envconfig:"R2_ACCESS_KEY_ID"`
	R2SecretKey    string `envconfig:"R2_SECRET_ACCESS_KEY"`
	R2Endpoint     string `envconfig:"R2_ENDPOINT"`
	R2PublicDomain string `envconfig:"R2_PUBLIC_DOMAIN"`

	GCSBucket           string `envconfig:"GCS_BUCKET"`
	GCSCredentialsFile  string `envconfig:"CREDENTIALS_FILE_LOCATION"`
	MaxProductImages    int    `envconfig:"MAX_PROD_IMAGES" default:"4"`
	MaxUploadSizeMB     int    `envconfig:"MAX_UPLOAD_SIZE_MB" default:"5"`
	AllowedImageFormats string `envconfig:"ALLOWED_FILE_EXTENSIONS" default:".jpg,.jpeg,.png,.webp"`
}

type Auth struct {
	JWTSecret        string `envconfig:"JWT_SECRET" required:"true"`
	JWTRefreshSecret string `envconfig:"JWT_REFRESH_SECRET" required:"true"`
	AccessTTLMinutes int    `envconfig:"ACCESS_TOKEN_TTL_MINUTES" default:"15"`
	RefreshTTLDays   int    `envconfig:"REFRESH_TOKEN_TTL_DAYS" default:"14"`
	AdminEmail       string `envconfig:"ADMIN_EMAIL"`
	AdminPassword    string `envconfig:"ADMIN_PASSWORD"`
	CookieSecure     bool   `envconfig:"COOKIE_SECURE" default:"true"`
	CookieDomain     string `envconfig:"COOKIE_DOMAIN"`
}

type Session struct {
	// "redis" or "file"
	Backend string        `split_words:"true" default:"file"`
	Dir     string        `split_words:"true" default:"./data/sessions"`
	TTL     time.Duration `split_words:"true" default:"720h"`
}

type Config struct {
	Env            string `envconfig:"APP_ENV" default:"development"`
	Addr           string `envconfig:"HTTP_ADDR" default:":8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`
	DefaultLang    string `envconfig:"DEFAULT_LANG" default:"fr"`

	Mongo   Mongo
	Redis   Redis
	Storage Storage
	Auth    Auth
	Session Session
}

func (c Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

func (c Config) Origins() map[string]bool {
	allowed := map[string]bool{}
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}
	return allowed
}

func (a Auth) AccessTTL() time.Duration {
	if a.AccessTTLMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(a.AccessTTLMinutes) * time.Minute
}

func (a Auth) RefreshTTL() time.Duration {
	if a.RefreshTTLDays <= 0 {
		return 14 * 24 * time.Hour
	}
	return time.Duration(a.RefreshTTLDays) * 24 * time.Hour
}

// Load reads the .env file selected by --env-file (or BOUTIQUE_ENV_FILE) and
// processes the environment into a Config.
func Load(args []string) (Config, error) {
	path := envFilePath(args)
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "no %s file found, using system environment variables\n", path)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	return cfg, nil
}

func envFilePath(args []string) string {
	cmdLine := pflag.NewFlagSet("boutique", pflag.ContinueOnError)
	arg := cmdLine.String("env-file", ".env", "dotenv file to load")
	_ = cmdLine.Parse(args)
	if env, ok := os.LookupEnv(envFileEnvName); ok {
		return env
	}
	return *arg
}
