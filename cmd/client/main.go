// Command client is a small CLI over the auth-service REST API. It exists for
// smoke-testing a running server and as a reference consumer of the adapter
// package.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/globalmart/auth-service/internal/adapter"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/models"
)

const requestTimeout = 10 * time.Second

func main() {
	var (
		address    = flag.String("address", "localhost:8080", "auth-service address")
		action     = flag.String("action", "", "one of: register, login, refresh, logout, me")
		email      = flag.String("email", "", "account email")
		password   = flag.String("password", "", "account password")
		fullName   = flag.String("full-name", "", "display name (register)")
		phone      = flag.String("phone", "", "contact phone (register)")
		rememberMe = flag.Bool("remember-me", false, "request the long-lived session (login)")
		token      = flag.String("token", "", "session token (refresh, logout) or access token (me)")
	)
	flag.Parse()

	log := logger.NewLogger("auth-client")

	client, err := adapter.NewHTTPAuthClient(*address, requestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating auth client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch *action {
	case "register":
		resp, err := client.Register(ctx, models.RegisterRequest{
			Email:           *email,
			FullName:        *fullName,
			Phone:           *phone,
			Password:        *password,
			ConfirmPassword: *password,
		})
		exitOnError(log, err, "registration failed")
		printJSON(log, resp)

	case "login":
		resp, err := client.Login(ctx, models.LoginRequest{
			Email:      *email,
			Password:   *password,
			RememberMe: *rememberMe,
		})
		exitOnError(log, err, "login failed")
		printJSON(log, resp)

	case "refresh":
		resp, err := client.Refresh(ctx, *token)
		exitOnError(log, err, "refresh failed")
		printJSON(log, resp)

	case "logout":
		exitOnError(log, client.Logout(ctx, *token), "logout failed")
		log.Info().Msg("session revoked")

	case "me":
		user, err := client.Me(ctx, *token)
		exitOnError(log, err, "profile fetch failed")
		printJSON(log, user)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func exitOnError(log *logger.Logger, err error, msg string) {
	if err != nil {
		log.Fatal().Err(err).Msg(msg)
	}
}

func printJSON(log *logger.Logger, v any) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Fatal().Err(err).Msg("error encoding response")
	}
}
