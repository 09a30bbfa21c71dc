package gcp

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// CredentialsPathEnv points at a service-account JSON file for local
// development. When unset, application-default credentials are used.
const CredentialsPathEnv = "FIREBASE_CONFIG"

// NewApp creates a Firebase App instance, optionally bound to an explicit
// project id.
func NewApp(ctx context.Context, projectID string) (*firebase.App, error) {
	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	if path, found := os.LookupEnv(CredentialsPathEnv); found {
		return firebase.NewApp(ctx, cfg, option.WithCredentialsFile(path))
	}
	return firebase.NewApp(ctx, cfg)
}

// InitFirestore initializes the Firebase App and returns a Firestore client.
// The caller owns the client and must Close it on shutdown.
func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	app, err := NewApp(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app [%w]", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing firestore client [%w]", err)
	}
	return client, nil
}
