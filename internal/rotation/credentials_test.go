package rotation

import (
	"testing"
)

func TestNewCredentials_DropsEmptiesAndDuplicates(t *testing.T) {
	creds := NewCredentials([]string{" key-a ", "", "key-b", "key-a", "  "})

	if len(creds) != 2 {
		t.Fatalf("expected 2 credentials, got %d", len(creds))
	}
	if creds[0].Token() != "key-a" || creds[1].Token() != "key-b" {
		t.Errorf("expected [key-a key-b], got [%s %s]", creds[0].Token(), creds[1].Token())
	}
}

func TestLoadCredentials_EnvPatterns(t *testing.T) {
	t.Setenv("TEST_API_KEY", "primary")
	t.Setenv("TEST_API_KEY_2", "second")
	t.Setenv("TEST_API_KEY_3", "third")
	t.Setenv("TEST_API_KEYS", "listed-1, second ,listed-2")

	creds, err := LoadCredentials("TEST_API_KEY")
	if err != nil {
		t.Fatalf("LoadCredentials() failed: %v", err)
	}

	want := []string{"primary", "second", "third", "listed-1", "listed-2"}
	if len(creds) != len(want) {
		t.Fatalf("expected %d credentials, got %d", len(want), len(creds))
	}
	for i, w := range want {
		if creds[i].Token() != w {
			t.Errorf("credential %d: expected %s, got %s", i, w, creds[i].Token())
		}
	}
}

func TestLoadCredentials_StopsAtGap(t *testing.T) {
	t.Setenv("GAP_API_KEY", "one")
	t.Setenv("GAP_API_KEY_3", "unreachable")

	creds, err := LoadCredentials("GAP_API_KEY")
	if err != nil {
		t.Fatalf("LoadCredentials() failed: %v", err)
	}
	if len(creds) != 1 {
		t.Fatalf("numbering gap should end the scan, got %d credentials", len(creds))
	}
}

func TestLoadCredentials_NoneConfigured(t *testing.T) {
	if _, err := LoadCredentials("MISSING_API_KEY"); err == nil {
		t.Fatal("expected an error when no key is configured")
	}
}

func TestRedacted(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"AIzaSyExample1234", "***1234"},
		{"abcd", "****"},
		{"ab", "****"},
	}
	for _, tt := range tests {
		c := &Credential{token: tt.token}
		if got := c.Redacted(); got != tt.want {
			t.Errorf("Redacted(%q): expected %q, got %q", tt.token, tt.want, got)
		}
	}
}
