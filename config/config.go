package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr     string `default:"" env:"APP_HOST"`
		Port           int    `default:"5000"  env:"APP_PORT"`
		BodyLimitMb    int    `default:"60" env:"APP_BODY_LIMIT_MB"`
		FrontendURL    string `default:"http://localhost:3000" env:"FRONTEND_URL"`
		ErrorNotifyURL string `default:"" env:"ERROR_NOTIFY_URL"`
		SwaggerFile    string `default:"./docs/swagger.json" env:"SWAGGER_FILE"`
		LogLevel       string `default:"info" env:"LOG_LEVEL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"attachment-portal" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		From       string `default:"" env:"SMTP_FROM"`
		SenderName string `default:"Internship Portal" env:"SMTP_SENDER_NAME"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"attachment-documents" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"JWT_SECRET"`
		JWTExpireInSec        int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"604800" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
		ResetCodeExpireInMin  int    `default:"60" env:"RESET_CODE_EXPIRE_IN_MIN"`
	}
	Admin struct {
		Email     string `default:"" env:"ADMIN_EMAIL"`
		Password  string `default:"" env:"ADMIN_PASSWORD"`
		FirstName string `default:"System" env:"ADMIN_FIRST_NAME"`
		LastName  string `default:"Administrator" env:"ADMIN_LAST_NAME"`
	}
	Documents struct {
		MaxSizeMb         int      `default:"5" env:"DOCUMENTS_MAX_SIZE_MB"`
		AllowedExtensions []string `default:"[.pdf,.jpg,.jpeg,.png]" env:"DOCUMENTS_ALLOWED_EXTENSIONS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
