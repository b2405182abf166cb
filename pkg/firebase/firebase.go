package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// App holds the initialized Firebase app and auth client
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
}

// InitFirebase initializes the Firebase application and authentication client
// from a service account file.
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file %s: %w", credentialsPath, err)
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("get firebase auth client: %w", err)
	}

	return &App{FirebaseApp: firebaseApp, AuthClient: authClient}, nil
}
