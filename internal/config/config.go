package config

import "github.com/spf13/viper"

// Config holds the service configuration, loaded from a YAML file with
// ASSETDESK_* environment overrides.
type Config struct {
	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	DB struct {
		Path string
	} `mapstructure:"db"`

	Log struct {
		Path string
	} `mapstructure:"log"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	SMTP struct {
		Enabled  bool
		Host     string
		Port     int
		Username string
		Password string
		From     string
	} `mapstructure:"smtp"`

	Admin struct {
		Name  string
		Email string
	} `mapstructure:"admin"`
}

// Load reads the configuration from path. An empty path uses defaults and
// environment variables only.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ASSETDESK")
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.path", "assetdesk.sqlite3")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("admin.name", "Admin")
	v.SetDefault("admin.email", "admin@localhost")

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}
