package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	AppPort           string
	AppEnv            string
	RedisAddr         string
	JWTSecret         string
	MidtransServerKey string
	MidtransClientKey string
	MidtransSandbox   bool
	AdminWhatsApp     string
	ProofUploadDir    string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		AppPort:           os.Getenv("APP_PORT"),
		AppEnv:            os.Getenv("APP_ENV"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),
		MidtransClientKey: os.Getenv("MIDTRANS_CLIENT_KEY"),
		MidtransSandbox:   os.Getenv("MIDTRANS_SANDBOX") != "false",
		AdminWhatsApp:     os.Getenv("ADMIN_WHATSAPP"),
		ProofUploadDir:    os.Getenv("PROOF_UPLOAD_DIR"),
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.ProofUploadDir == "" {
		cfg.ProofUploadDir = "./uploads/donation_proofs"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}
