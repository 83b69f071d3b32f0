// Command token mints a client bearer token for the speech API.
//
//	AUTH_JWT_SECRET=... go run ./cmd/token -client my-app -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Sreehari3301/SPEECH-RECOGNITION-SYSTEM/internal/auth"
)

func main() {
	clientID := flag.String("client", "", "client id stored in the token subject")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if *clientID == "" {
		fmt.Fprintln(os.Stderr, "usage: token -client <id> [-ttl 168h]")
		os.Exit(2)
	}

	// Only the secret matters here, so the full config (and its provider keys) is not validated
	authenticator, err := auth.NewAuthenticator(os.Getenv("AUTH_JWT_SECRET"), logger)
	if err != nil {
		logger.Fatal("AUTH_JWT_SECRET must be set to mint tokens", zap.Error(err))
	}

	token, err := authenticator.GenerateClientToken(*clientID, *ttl)
	if err != nil {
		logger.Fatal("Failed to generate token", zap.Error(err))
	}

	logger.Info("Token minted",
		zap.String("client", *clientID),
		zap.Time("expiresAt", time.Now().Add(*ttl)))
	fmt.Println(token)
}
