package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		LogLevel   string `default:"info" env:"APP_LOG_LEVEL"`
		// 5xx responses are reported here when set
		ErrNotifyURL  string `default:"" env:"APP_ERR_NOTIFY_URL"`
		BodyLimitMB   int    `default:"2" env:"APP_BODY_LIMIT_MB"`
		UploadLimitMB int    `default:"20" env:"APP_UPLOAD_LIMIT_MB"`
	}
	Database struct {
		Host               string `default:"127.0.0.1" env:"DB_HOST"`
		Port               string `default:"5432" env:"DB_PORT"`
		Name               string `default:"ats" env:"DB_NAME"`
		User               string `default:"postgres" env:"DB_USER"`
		Password           string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart     *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode          *bool  `default:"false" env:"DB_DEBUG_MODE"`
		MaxOpenConns       int    `default:"20" env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns       int    `default:"5" env:"DB_MAX_IDLE_CONNS"`
		ConnMaxLifetimeMin int    `default:"30" env:"DB_CONN_MAX_LIFETIME_MIN"`
	}
	Auth struct {
		JWTSecret      string `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"ats-documents" env:"S3_BUCKET_NAME"`
		ShareLinkTTLMin int    `default:"60" env:"S3_SHARE_LINK_TTL_MIN"`
	}
	YandexGPT struct {
		IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
		CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
	}
	Pipeline struct {
		// job status thresholds, days
		NewPeriodDays   int `default:"3" env:"JOB_NEW_PERIOD_DAYS"`
		ClosingSoonDays int `default:"7" env:"JOB_CLOSING_SOON_DAYS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not loaded, using process environment")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
