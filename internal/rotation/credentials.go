package rotation

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Credential is one API key in the rotation pool. Identity is the token
// value; the failed flag excludes it from selection until a success using
// it or a pool-wide reset clears it.
type Credential struct {
	token        string
	failed       bool
	lastFailedAt time.Time
}

// Token returns the raw API key.
func (c *Credential) Token() string { return c.token }

// Failed reports whether the credential is currently excluded.
func (c *Credential) Failed() bool { return c.failed }

// LastFailedAt returns when the credential last failed, zero if never.
func (c *Credential) LastFailedAt() time.Time { return c.lastFailedAt }

func (c *Credential) markFailed() {
	c.failed = true
	c.lastFailedAt = time.Now()
}

func (c *Credential) clearFailed() {
	c.failed = false
}

// Redacted returns a loggable form of the token.
func (c *Credential) Redacted() string {
	if len(c.token) <= 4 {
		return "****"
	}
	return "***" + c.token[len(c.token)-4:]
}

// NewCredentials builds a pool from raw tokens, dropping empties and
// duplicates while preserving order.
func NewCredentials(tokens []string) []*Credential {
	seen := make(map[string]bool, len(tokens))
	var creds []*Credential
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		creds = append(creds, &Credential{token: token})
	}
	return creds
}

// LoadCredentials resolves the pool from the environment once at startup.
// It reads NAME, then NAME_2, NAME_3, ... until a gap, then the
// comma-separated NAMES list.
func LoadCredentials(name string) ([]*Credential, error) {
	var tokens []string

	if primary := os.Getenv(name); primary != "" {
		tokens = append(tokens, primary)
	}

	for index := 2; ; index++ {
		key := os.Getenv(fmt.Sprintf("%s_%d", name, index))
		if key == "" {
			break
		}
		tokens = append(tokens, key)
	}

	if list := os.Getenv(name + "S"); list != "" {
		tokens = append(tokens, strings.Split(list, ",")...)
	}

	creds := NewCredentials(tokens)
	if len(creds) == 0 {
		return nil, fmt.Errorf("no API key configured: set %s in the environment or .env", name)
	}
	return creds, nil
}
