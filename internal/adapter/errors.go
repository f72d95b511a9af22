package adapter

import "fmt"

// CredentialError indicates a provider mandates an API key that is not
// configured. Raised before any HTTP call is made.
type CredentialError struct {
	Provider string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: API key required", e.Provider)
}

// TransportError wraps an HTTP or network-level failure, including
// non-2xx responses. It aborts the provider's whole fetch; there is no
// per-page retry.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: fetch failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
