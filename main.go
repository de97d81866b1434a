package main

import (
	"os"

	"github.com/GoPowerDNS-Admin/firebase-auth-gateway/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
