// Package config loads typed configuration structs from the process
// environment.
//
// Fields are bound with caarlos0/env struct tags. Before the first parse the
// package loads dotenv files with joho/godotenv; missing files are ignored and
// variables already set in the environment always win.
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[Config]()
//
// A struct that implements Validator is checked after parsing and the error is
// returned wrapped in ErrInvalidConfig.
package config
