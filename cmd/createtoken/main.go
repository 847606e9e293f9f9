package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"interntrack.com/interntrack/config"
	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/security"
)

// Mints a short-lived admin token for exercising the API by hand.
func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	user := &model.User{
		ID:    "dev-admin",
		Email: "admin@interntrack.com",
		Role:  model.RoleAdmin,
	}
	token, err := security.CreateUserToken(user, []byte(cfg.JWTSecret), time.Hour)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
