// Package provider holds helpers shared by the wire adapters.
package provider

import (
	"net/http"

	"github.com/davidbz/ember/internal/domain"
)

// Headers builds the upstream headers for a descriptor: common headers, then
// the descriptor's own headers, then the bearer credential when present.
func Headers(desc *domain.ProviderDescriptor, accept string) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", accept)

	for key, value := range desc.Headers {
		headers.Set(key, value)
	}

	if desc.Credential != "" {
		headers.Set("Authorization", "Bearer "+desc.Credential)
	}

	return headers
}
