package config

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/estate-chain/marketplace-router/internal/lib"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/omeid/uconfig/flat"
)

const (
	TagEnv  = "env"
	TagFlag = "flag"
	TagDesc = "desc"
)

var (
	ErrEnvLoad          = errors.New("cannot load .env file")
	ErrEnvParse         = errors.New("cannot parse env variable")
	ErrFlagParse        = errors.New("cannot parse flag")
	ErrConfigInvalid    = errors.New("invalid config struct")
	ErrConfigValidation = errors.New("config validation error")
)

type DefaultsSetter interface {
	SetDefaults()
}

// LoadConfig fills cfg from .env file, environment and command line flags (in the order of precedence),
// applies defaults and validates the result
func LoadConfig(cfg DefaultsSetter, osArgs []string, envFile string) error {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return lib.WrapError(ErrEnvLoad, err)
		}
	}

	// recursively iterates over each field of the nested struct
	fields, err := flat.View(cfg)
	if err != nil {
		return lib.WrapError(ErrConfigInvalid, err)
	}

	flagset := flag.NewFlagSet("", flag.ContinueOnError)

	for _, field := range fields {
		envName, ok := field.Tag(TagEnv)
		if !ok {
			continue
		}

		if envValue, ok := os.LookupEnv(envName); ok {
			err := field.Set(envValue)
			if err != nil {
				return lib.WrapError(ErrEnvParse, errors.New(envName+": "+err.Error()))
			}
		}

		flagName, ok := field.Tag(TagFlag)
		if !ok {
			continue
		}

		flagDesc, _ := field.Tag(TagDesc)

		// writes flag value to variable
		flagset.Var(field, flagName, flagDesc)
	}

	var args []string
	if len(osArgs) > 1 {
		args = osArgs[1:]
	}

	// flags override .env variables
	err = flagset.Parse(args)
	if err != nil {
		return lib.WrapError(ErrFlagParse, err)
	}

	cfg.SetDefaults()

	err = NewValidator().Struct(cfg)
	if err != nil {
		return lib.WrapError(ErrConfigValidation, err)
	}

	return nil
}

// NewValidator returns validator with custom tags used across config structs
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, ok := fl.Field().Interface().(time.Duration)
		return ok && d >= 0
	})
	return v
}
