package google

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const clientSecret = `{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestClientOptions_UserToken(t *testing.T) {
	dir := t.TempDir()
	creds := Credentials{
		CredentialsFile: writeFile(t, dir, "credentials.json", clientSecret),
		TokenFile:       writeFile(t, dir, "token.json", `{"access_token":"abc","refresh_token":"def","token_type":"Bearer"}`),
	}
	opts, err := ClientOptions(context.Background(), creds, "https://www.googleapis.com/auth/gmail.readonly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("expected one option, got %d", len(opts))
	}
}

func TestClientOptions_RequiresBothFiles(t *testing.T) {
	dir := t.TempDir()
	creds := Credentials{CredentialsFile: writeFile(t, dir, "credentials.json", clientSecret)}
	if _, err := ClientOptions(context.Background(), creds); err == nil {
		t.Fatalf("expected error when token file is missing")
	}
}

func TestLoadToken_RejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadToken(writeFile(t, dir, "token.json", `{}`)); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if _, err := LoadToken(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
