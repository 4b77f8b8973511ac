package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/farhanputra/event-management-backend/config"
)

var (
	FirebaseApp    *firebase.App
	FirebaseClient *messaging.Client
	firebaseOnce   sync.Once
	firebaseErr    error
)

// InitFirebase initializes the Firebase Admin SDK and FCM client once. A
// missing credentials file disables push notifications without failing boot.
func InitFirebase(cfg *config.Config) error {
	firebaseOnce.Do(func() {
		ctx := context.Background()
		log.Println("🔄 Initializing Firebase...")

		credentialsPath := cfg.FCMCredentialsPath
		if credentialsPath == "" {
			credentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		}
		if credentialsPath == "" {
			credentialsPath = "./serviceAccountKey.json"
		}

		if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
			log.Printf("⚠️ Firebase credentials not found at %s, push notifications disabled", credentialsPath)
			firebaseErr = fmt.Errorf("firebase credentials file not found: %s", credentialsPath)
			return
		}

		opts := []option.ClientOption{option.WithCredentialsFile(credentialsPath)}
		conf := &firebase.Config{ProjectID: cfg.FCMProjectID}

		app, err := firebase.NewApp(ctx, conf, opts...)
		if err != nil {
			log.Printf("❌ Failed to initialize Firebase app: %v", err)
			firebaseErr = err
			return
		}

		client, err := app.Messaging(ctx)
		if err != nil {
			log.Printf("❌ Failed to initialize FCM client: %v", err)
			firebaseErr = err
			return
		}

		FirebaseApp = app
		FirebaseClient = client
		log.Println("✅ Firebase initialized")
	})
	return firebaseErr
}

// SendPush delivers a push message to a device token. No-op when Firebase is
// not configured.
func SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	if FirebaseClient == nil || token == "" {
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := FirebaseClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	return nil
}
