package database

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Path string `env:"DB_PATH" envDefault:"data/violations.db"`
}

func NewConfig() (*envConfig, error) {
	_ = godotenv.Load()

	dbConfig := &envConfig{}
	opts := env.Options{}
	if err := env.Parse(dbConfig, opts); err != nil {
		return nil, err
	}
	return dbConfig, nil
}
