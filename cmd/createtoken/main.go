package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"smarthourly.com/smarthourly/security"
)

func main() {
	uid := flag.String("uid", "", "user id (UUID from the auth service)")
	name := flag.String("name", "", "display name")
	expires := flag.Int64("expires", 8*3600, "token lifetime in seconds")
	flag.Parse()

	if *uid == "" {
		log.Fatal("-uid is required")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		UserID: *uid,
		Name:   *name,
	}, os.Getenv("SMARTHOURLY_SIGNING_SECRET"), *expires)
	if err != nil {
		log.Fatalf("failed to create token: %v", err)
	}

	fmt.Println(token)
}
