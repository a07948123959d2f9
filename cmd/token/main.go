// Command token mints a JWT for the galaxy server's admin endpoints using
// JWT_SECRET from the environment or .env.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/shared/config"
)

func main() {
	subject := flag.String("subject", "operator", "token subject")
	role := flag.String("role", auth.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_EXPIRATION_HOURS)")
	flag.Parse()

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = config.GlobalConfig.Auth.TokenExpiration
	}
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}

	token, err := auth.GenerateJWT(config.GlobalConfig.Auth.JWTSecret, *subject, *role, lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
