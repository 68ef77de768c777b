package cmd

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func b64url(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func writeTokenFile(t *testing.T, token string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.txt")
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	return path
}

func TestClaimsCommandDecodesTokenWithFallbacks(t *testing.T) {
	header := `{"alg":"RS256","typ":"JWT"}`
	// No sub/appid: the oid and azp fallbacks must be used; scp and
	// name are absent and fall back to N/A.
	payload := `{"aud":"api://example","iss":"https://issuer.example","oid":"user-123","azp":"client-9","iat":1772400000,"exp":1772403600,"unique_name":"user@example.com"}`
	token := b64url(header) + "." + b64url(payload) + "." + b64url("sig")

	cmd := newClaimsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{writeTokenFile(t, token)})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute claims: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"TOKEN HEADER",
		"TOKEN PAYLOAD (CLAIMS)",
		"Subject (sub):     user-123",
		"Client (appid):    client-9",
		"Scopes (scp):      N/A",
		"Name:              N/A",
		"UPN:               user@example.com",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, text)
		}
	}
}

func TestClaimsCommandRejectsWrongSegmentCount(t *testing.T) {
	cmd := newClaimsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{writeTokenFile(t, "only.two")})

	err := cmd.Execute()
	if err == nil {
		t.Fatalf("expected error for two-segment token")
	}
	if !strings.Contains(err.Error(), "expected 3 segments, got 2") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClaimsCommandRejectsUndecodableSegment(t *testing.T) {
	token := "!!!." + b64url(`{"ok":true}`) + ".sig"

	cmd := newClaimsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{writeTokenFile(t, token)})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for undecodable header segment")
	}
}

func TestClaimsCommandRequiresArgument(t *testing.T) {
	cmd := newClaimsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected usage error with no argument")
	}
}

func TestClaimsCommandToleratesPaddedSegments(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload := b64url(`{"aud":"a","iss":"i","sub":"s","appid":"c","iat":1,"exp":2}`)
	token := padded + "." + payload + ".sig"

	cmd := newClaimsCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{writeTokenFile(t, token)})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute claims with padded segment: %v", err)
	}
	if !strings.Contains(out.String(), "Subject (sub):     s") {
		t.Fatalf("expected subject claim, got:\n%s", out.String())
	}
}
