package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	Env        string
	CORSOrigin string
	AppBaseURL string

	// DBBackend selects the persistence backend: "mysql" or "mongo".
	DBBackend string
	DSN       string
	MongoURI  string
	MongoDB   string

	JWTSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
}

func Load() *Config {
	_ = godotenv.Load()

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		smtpPort = 587
	}

	c := &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "dev"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),

		DBBackend: getEnv("DB_BACKEND", "mysql"),
		JWTSecret: mustEnv("JWT_SECRET"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: smtpPort,
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		MailFrom: getEnv("MAIL_FROM", "no-reply@rentacar.local"),

		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "rentacar-images"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
	}

	switch c.DBBackend {
	case "mysql":
		c.DSN = mustEnv("DB_DSN")
	case "mongo":
		c.MongoURI = mustEnv("MONGO_URI")
		c.MongoDB = getEnv("MONGO_DB", "rentacar")
	default:
		log.Fatalf("unknown DB_BACKEND: %s", c.DBBackend)
	}

	log.Printf("config loaded: env=%s port=%s backend=%s", c.Env, c.Port, c.DBBackend)
	return c
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing env: %s", k)
	}
	return v
}
