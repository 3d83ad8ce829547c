package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Port                string `mapstructure:"PORT"`
	DBHost              string `mapstructure:"DB_HOST"`
	DBPort              string `mapstructure:"DB_PORT"`
	DBUser              string `mapstructure:"DB_USER"`
	DBPassword          string `mapstructure:"DB_PASSWORD"`
	DBName              string `mapstructure:"DB_NAME"`
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	ClerkWebhookSecret  string `mapstructure:"CLERK_WEBHOOK_SECRET"`
	ClerkJWTKey         string `mapstructure:"CLERK_JWT_KEY"`
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	Currency            string `mapstructure:"CURRENCY"`
	CloudinaryURL       string `mapstructure:"CLOUDINARY_URL"`
	AllowedOrigins      string `mapstructure:"ALLOWED_ORIGINS"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// Явно биндим переменные, чтобы Viper их видел без файла
	viper.BindEnv("PORT")
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("CLERK_WEBHOOK_SECRET")
	viper.BindEnv("CLERK_JWT_KEY")
	viper.BindEnv("STRIPE_SECRET_KEY")
	viper.BindEnv("STRIPE_WEBHOOK_SECRET")
	viper.BindEnv("CURRENCY")
	viper.BindEnv("CLOUDINARY_URL")
	viper.BindEnv("ALLOWED_ORIGINS")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Файла нет? Работаем на ENV
	}

	err = viper.Unmarshal(&config)
	return
}
