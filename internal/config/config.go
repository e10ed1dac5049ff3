package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type MqttCfg struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Topic    string `yaml:"topic"`
}

type Config struct {
	Sequence string  `yaml:"sequence"` // path to the authored sequence file
	FPS      int     `yaml:"fps"`
	Loop     bool    `yaml:"loop"`
	Volume   float64 `yaml:"volume"` // master scale applied to event volumes
	Mute     bool    `yaml:"mute"`
	Addr     string  `yaml:"addr"` // HTTP listen address for the preview server

	Mqtt *MqttCfg `yaml:"mqtt,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
