// utils/firebase.go
package utils

import (
	"context"
	"log"

	"rescuehub/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Dispatch
// alerts are published through FCM; when no service account is configured
// the client stays nil and alerting is skipped.
func FirebaseInit() {
	if config.AppConfig.GoogleServiceAccountFile == "" {
		log.Println("firebase: no service account configured, dispatch alerts disabled")
		return
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
