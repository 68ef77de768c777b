package cmd

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// claims decodes an access token without verifying its signature. It is
// a debugging aid only and shares no code path with prompt assembly or
// scoring.

func newClaimsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "claims <token-file>",
		Short: "Decode an access token's header and claims (no signature check)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read token file: %w", err)
			}
			return printClaims(cmd, strings.TrimSpace(string(data)))
		},
	}
}

func printClaims(cmd *cobra.Command, token string) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("invalid token: expected 3 segments, got %d", len(parts))
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return fmt.Errorf("decode header: %w", err)
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	out := cmd.OutOrStdout()
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "TOKEN HEADER")
	fmt.Fprintln(out, rule)
	printJSON(out, header)
	fmt.Fprintln(out)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "TOKEN PAYLOAD (CLAIMS)")
	fmt.Fprintln(out, rule)
	printJSON(out, payload)
	fmt.Fprintln(out)

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "KEY CLAIMS")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Audience (aud):    %v\n", payload["aud"])
	fmt.Fprintf(out, "Issuer (iss):      %v\n", payload["iss"])
	fmt.Fprintf(out, "Subject (sub):     %v\n", claimOr(payload, "sub", "oid"))
	fmt.Fprintf(out, "Client (appid):    %v\n", claimOr(payload, "appid", "azp"))
	fmt.Fprintf(out, "Scopes (scp):      %v\n", claimOrDefault(payload, "N/A", "scp"))
	fmt.Fprintf(out, "Issued At (iat):   %v\n", payload["iat"])
	fmt.Fprintf(out, "Expires (exp):     %v\n", payload["exp"])
	fmt.Fprintf(out, "Name:              %v\n", claimOrDefault(payload, "N/A", "name"))
	fmt.Fprintf(out, "UPN:               %v\n", claimOrDefault(payload, "N/A", "upn", "unique_name"))
	return nil
}

// decodeSegment decodes one padded base64url JSON segment.
func decodeSegment(segment string) (map[string]any, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
	if err != nil {
		return nil, err
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func printJSON(out io.Writer, v map[string]any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
		return
	}
	out.Write(append(data, '\n'))
}

// claimOr returns the first present claim of the given names.
func claimOr(payload map[string]any, names ...string) any {
	for _, name := range names {
		if v, ok := payload[name]; ok {
			return v
		}
	}
	return nil
}

// claimOrDefault is claimOr with a fallback value for absent claims.
func claimOrDefault(payload map[string]any, fallback any, names ...string) any {
	if v := claimOr(payload, names...); v != nil {
		return v
	}
	return fallback
}

func init() {
	rootCmd.AddCommand(newClaimsCommand())
}
