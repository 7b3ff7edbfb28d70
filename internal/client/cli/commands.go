package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inventa-labs/inventa/internal/client/api"
	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/cryptox"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates a new account. On success
// the returned access token is kept for subsequent calls.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.client.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	a.userName = resp.User.Username
	fmt.Println("Registered! Your signing keypair has been generated server-side.")
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.userName = resp.User.Username
	fmt.Println("Success!")
	return nil
}

// Upload reads a file from disk and registers it for ownership.
func (a *App) Upload(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to the file", os.Stdout)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	description, err := getSimpleText(a.reader, "Enter description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.client.Upload(ctx, api.UploadRequest{
		Filename:    filepath.Base(path),
		Content:     content,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered: id=%s hash=%s\n", doc.ID, doc.ContentHash)
	return nil
}

// List prints the caller's registered documents.
func (a *App) List(ctx context.Context) error {
	docs, err := a.client.List(ctx)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Println("No documents registered yet.")
		return nil
	}

	for _, d := range docs {
		fmt.Printf("%s  %s  %s  %s\n", d.ID, d.CreatedAt, d.ContentHash, d.Filename)
	}
	return nil
}

// Proof fetches and prints the ownership proof for a document.
func (a *App) Proof(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return err
	}

	proof, err := a.client.Proof(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Status:     %s\n", proof.VerificationStatus)
	fmt.Printf("Document:   %s (%s)\n", proof.DocumentID, proof.Filename)
	fmt.Printf("Hash:       %s\n", proof.DocumentHash)
	fmt.Printf("Owner:      %s <%s>\n", proof.OwnerUsername, proof.OwnerEmail)
	fmt.Printf("Registered: %s\n", proof.Timestamp)
	fmt.Printf("Signature:  %s\n", proof.Signature)
	fmt.Printf("Public key:\n%s\n", proof.OwnerPublicKey)
	return nil
}

// Verify fingerprints a local file and asks the server whether it is
// registered. Works without logging in.
func (a *App) Verify(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to the file", os.Stdout)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := a.client.VerifyHash(ctx, cryptox.Fingerprint(content))
	if err != nil {
		return err
	}

	if !result.Verified {
		fmt.Println("Not registered.")
		return nil
	}

	fmt.Printf("Registered at %s", result.Document.CreatedAt)
	if result.Owner != nil {
		fmt.Printf(" by %s", result.Owner.Username)
	}
	fmt.Println()
	if result.SignatureValid {
		fmt.Println("Ownership signature: valid")
	} else {
		fmt.Println("Ownership signature: INVALID")
	}
	return nil
}

// Download retrieves the decrypted original of an owned document.
func (a *App) Download(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter document id", os.Stdout)
	if err != nil {
		return err
	}

	filename, data, err := a.client.Download(ctx, id)
	if err != nil {
		return err
	}
	if filename == "" {
		filename = id + ".bin"
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return err
	}

	fmt.Printf("Saved %d bytes to %s\n", len(data), filename)
	return nil
}

// Logout drops the session token.
func (a *App) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.userName = ""
	fmt.Println("Logged out.")
	return nil
}
