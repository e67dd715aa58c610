package main

import (
	"github.com/sirupsen/logrus"

	"github.com/SayedAliMajed/pearlconnect-back-end/cmd/bootstrap"
)

func main() {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
