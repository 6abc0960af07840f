package testutil

// FixedTokenGenerator generates the same run token every time.
//
// This enables deterministic scenario execution and golden snapshot
// comparison: the same scenario with the same FixedTokenGenerator produces
// byte-identical trace snapshots.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// NewFixedTokenGenerator creates a new fixed run token generator.
//
// The token is typically set in the scenario YAML:
//
//	run_token: "run-token-checkout"
//
// If token is empty, Generate() returns "run-token-default".
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = "run-token-default"
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements harness.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
