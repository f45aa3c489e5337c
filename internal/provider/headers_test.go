package provider_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/provider"
)

func TestHeaders(t *testing.T) {
	t.Run("should add bearer credential", func(t *testing.T) {
		desc := &domain.ProviderDescriptor{ID: "a", Credential: "secret"}

		headers := provider.Headers(desc, "text/event-stream")

		require.Equal(t, "application/json", headers.Get("Content-Type"))
		require.Equal(t, "text/event-stream", headers.Get("Accept"))
		require.Equal(t, "Bearer secret", headers.Get("Authorization"))
	})

	t.Run("should omit authorization without credential", func(t *testing.T) {
		headers := provider.Headers(&domain.ProviderDescriptor{ID: "a"}, "*/*")
		require.Empty(t, headers.Get("Authorization"))
	})

	t.Run("should let descriptor headers override defaults", func(t *testing.T) {
		desc := &domain.ProviderDescriptor{
			ID:      "a",
			Headers: map[string]string{"Accept": "*/*", "Origin": "https://example.test"},
		}

		headers := provider.Headers(desc, "text/event-stream")

		require.Equal(t, "*/*", headers.Get("Accept"))
		require.Equal(t, "https://example.test", headers.Get("Origin"))
	})
}
