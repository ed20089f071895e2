// Package google builds authenticated client options for the Google API
// backends from stored credentials. It never runs an interactive consent flow.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// Credentials points at an OAuth client secret and a previously saved user
// token. When both are empty, Application Default Credentials are used.
type Credentials struct {
	CredentialsFile string
	TokenFile       string
}

// ClientOptions returns options that authenticate requests for scopes.
func ClientOptions(ctx context.Context, creds Credentials, scopes ...string) ([]option.ClientOption, error) {
	credFile := strings.TrimSpace(creds.CredentialsFile)
	tokenFile := strings.TrimSpace(creds.TokenFile)
	switch {
	case credFile != "" && tokenFile != "":
		ts, err := userTokenSource(ctx, credFile, tokenFile, scopes)
		if err != nil {
			return nil, err
		}
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	case credFile != "" || tokenFile != "":
		return nil, fmt.Errorf("both google credentials and token files are required")
	default:
		ts, err := googleoauth.DefaultTokenSource(ctx, scopes...)
		if err != nil {
			return nil, fmt.Errorf("default credentials: %w", err)
		}
		return []option.ClientOption{option.WithTokenSource(ts)}, nil
	}
}

func userTokenSource(ctx context.Context, credFile, tokenFile string, scopes []string) (oauth2.TokenSource, error) {
	b, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	cfg, err := googleoauth.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	tok, err := LoadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	return cfg.TokenSource(ctx, tok), nil
}

// LoadToken reads an oauth2.Token saved as JSON.
func LoadToken(path string) (*oauth2.Token, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("token file %s has neither access nor refresh token", path)
	}
	return &tok, nil
}
