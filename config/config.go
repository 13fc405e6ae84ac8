package config

import (
	"sync"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var once sync.Once

// InitConfig binds environment variables and defaults. A .env file in the
// working directory is loaded first so local runs match container runs.
func InitConfig() {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Debugf("no .env file loaded: %v", err)
		}

		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("api_pro_key", "API_PRO_KEY")
		viper.BindEnv("db_path", "DB_PATH")
		viper.BindEnv("default_update_interval", "DEFAULT_UPDATE_INTERVAL")
		viper.BindEnv("tick_interval_seconds", "TICK_INTERVAL_SECONDS")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "LANG")

		viper.SetDefault("db_path", "data/bot.db")
		viper.SetDefault("default_update_interval", 300)
		viper.SetDefault("tick_interval_seconds", 5)
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetInt64(key string) int64 {
	InitConfig()
	return viper.GetInt64(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}
