package config

import (
	"log"

	"ecommerce-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds all runtime settings, read from the environment.
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	DBPath         string `envconfig:"DB_PATH" default:"ecommerce.db"`
	JWTSecret      string `envconfig:"JWT_SECRET" default:"ecommerce_super_secret_2024"`
	JWTExpireHours int    `envconfig:"JWT_EXPIRE_HOURS" default:"24"`
	Region         string `envconfig:"REGION" default:"ap-southeast-1"`
	Currency       string `envconfig:"CURRENCY" default:"THB"`

	// Optional integrations. Events are skipped when AMQPURL is empty;
	// payments return 503 until the Omise keys are set.
	AMQPURL        string `envconfig:"AMQP_URL"`
	AMQPExchange   string `envconfig:"AMQP_EXCHANGE" default:"ecommerce.events"`
	OmisePublicKey string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey string `envconfig:"OMISE_SECRET_KEY"`
}

var C Config

// JWTSecret used to sign tokens — populated by Load
var JWTSecret []byte

var DB *gorm.DB

// Load reads .env (if present) and the process environment into C.
func Load() error {
	_ = godotenv.Load()
	if err := envconfig.Process("", &C); err != nil {
		return err
	}
	JWTSecret = []byte(C.JWTSecret)
	return nil
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(C.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate runs auto-migration for the full model set.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
}
