package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"carrental-client/internal/config"
	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/security"
)

// devtoken mints an access/ID token pair for a local identity provider that
// shares the session token_secret with the client.
func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	subject := flag.String("sub", "", "Subject (user id at the identity provider)")
	givenName := flag.String("given-name", "", "given_name claim")
	familyName := flag.String("family-name", "", "family_name claim")
	email := flag.String("email", "", "email claim")
	phone := flag.String("phone", "", "phone_number claim")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	if cfg.Session.TokenSecret == "" {
		logger.Error("session.token_secret is not set, refusing to mint unverifiable tokens")
		os.Exit(1)
	}
	if *subject == "" {
		logger.Error("Missing -sub")
		flag.Usage()
		os.Exit(1)
	}

	issuer := security.NewTokenIssuer(cfg.Session.TokenSecret)
	access, err := issuer.IssueAccessToken(*subject, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue access token: %v", err)
	}
	id, err := issuer.IssueIDToken(domain.IdentityClaims{
		Subject:     *subject,
		GivenName:   *givenName,
		FamilyName:  *familyName,
		Email:       *email,
		PhoneNumber: *phone,
	}, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue ID token: %v", err)
	}

	logger.Info("Tokens issued", "sub", *subject, "expires_in", ttl.String())
	fmt.Printf("ACCESS_TOKEN=%s\n", access)
	fmt.Printf("ID_TOKEN=%s\n", id)
}
