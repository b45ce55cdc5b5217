package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type ConfigSchema struct {
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Database struct {
		Driver string `yaml:"driver"` // sqlite или postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"db"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Assistant struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"assistant"`
	Demo bool `yaml:"demo"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var conf ConfigSchema
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return err
	}
	// Ключ ассистента из окружения имеет приоритет над файлом
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		conf.Assistant.APIKey = key
	}
	AppConfig = &conf
	return nil
}
