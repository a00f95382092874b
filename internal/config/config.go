package config

import "github.com/spf13/viper"

// CollabConfig is collabd's configuration: storage, cache, broker and
// the auth service it delegates token verification to.
type CollabConfig struct {
	Running struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"running"`
	Mysql struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"mysql"`
	Redis struct {
		Addrs    []string `mapstructure:"addrs"`
		Password string   `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
	Auth struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"auth"`
}

// AuthConfig is authd's configuration.
type AuthConfig struct {
	Running struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"running"`
	Mysql struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"mysql"`
}

func load(name string, out interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(out)
}

func LoadCollab() (*CollabConfig, error) {
	cfg := &CollabConfig{}
	if err := load("collabConfig", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadAuth() (*AuthConfig, error) {
	cfg := &AuthConfig{}
	if err := load("authConfig", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
