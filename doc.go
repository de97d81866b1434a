// Package main provides the entry point of the firebase auth gateway.
// It runs a Fiber web server that renders the FirebaseUI sign-in widget,
// verifies the Firebase ID tokens posted back by the widget against Google's
// published keys and keeps the signed-in account in a server side session.
// Accounts are persisted with gorm in sqlite, mysql or postgres.
//
// Usage:
//
//	firebase-auth-gateway start --config ./etc/
//	firebase-auth-gateway start --dev
//	firebase-auth-gateway config dump --json
package main
