// Command token issues a development credential signed with JWT_SECRET.
//
//	go run ./cmd/token --user alice --email alice@example.com
package main

import (
	"chat-server/auth"
	"chat-server/internal"
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var userID, email, envFile string
	var ttl time.Duration
	flagSet := pflag.NewFlagSet("token", pflag.ContinueOnError)
	flagSet.StringVar(&userID, "user", "", "user id carried by the token (required)")
	flagSet.StringVar(&email, "email", "", "email carried by the token")
	flagSet.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flagSet.StringVar(&envFile, "env-file", ".env", "env file holding JWT_SECRET")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("--user is required")
	}

	_ = godotenv.Load(envFile)
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	token, err := auth.GenerateToken([]byte(config.JWTSecret), config.JWTIssuer, userID, email, ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
