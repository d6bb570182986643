// Package main generates a merchant API key and the bcrypt hash the server
// expects in MERCHANT_API_KEY_HASH.
package main

import (
	"fmt"
	"log"

	"dropin/internal/gateway"

	"github.com/google/uuid"
)

func main() {
	key := "key_" + uuid.NewString()

	hash, err := gateway.HashAPIKey(key)
	if err != nil {
		log.Fatalf("Failed to hash API key: %v", err)
	}

	fmt.Println("API key (give this to the merchant):")
	fmt.Println("  " + key)
	fmt.Println("MERCHANT_API_KEY_HASH (set this on the server):")
	fmt.Println("  " + hash)
}
