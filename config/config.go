package config

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Secret    string `yaml:"secret"`
	JwtExpire int    `yaml:"jwt_expire"` // token lifetime in hours
}

type DBConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Location: "America/Mexico_City",
		Workdir:  "/var/supermercado",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      8000,
		Secret:    "9b6de5cc-0001-1203-xxtt-0f568ac9da37",
		JwtExpire: 24,
	},
	Database: DBConfig{
		URL:  "mongodb://127.0.0.1:27017",
		Name: "supermercado",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/supermercado/supermercado.log",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the yaml configuration file and applies SUPERMERCADO_*
// environment overrides. A missing or unreadable file falls back to defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("SUPERMERCADO_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("SUPERMERCADO_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("SUPERMERCADO_WEB_HOST", &cfg.Web.Host)
	setEnvValue("SUPERMERCADO_WEB_SECRET", &cfg.Web.Secret)
	setEnvIntValue("SUPERMERCADO_WEB_PORT", &cfg.Web.Port)
	setEnvIntValue("SUPERMERCADO_WEB_JWT_EXPIRE", &cfg.Web.JwtExpire)

	setEnvValue("SUPERMERCADO_DB_URL", &cfg.Database.URL)
	setEnvValue("SUPERMERCADO_DB_NAME", &cfg.Database.Name)

	setEnvValue("SUPERMERCADO_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("SUPERMERCADO_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)
	setEnvValue("SUPERMERCADO_LOGGER_FILENAME", &cfg.Logger.Filename)

	return cfg
}
