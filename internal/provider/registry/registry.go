package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/davidbz/ember/internal/domain"
)

// Registry implements the ProviderRegistry interface. It is immutable after
// construction, so concurrent lookups need no locking.
type Registry struct {
	providers map[string]domain.ProviderDescriptor
	ids       []string
}

// NewRegistry builds a registry from descriptors.
func NewRegistry(descriptors []domain.ProviderDescriptor) (*Registry, error) {
	providers := make(map[string]domain.ProviderDescriptor, len(descriptors))
	ids := make([]string, 0, len(descriptors))

	for _, desc := range descriptors {
		id := strings.TrimSpace(desc.ID)
		if id == "" {
			return nil, errors.New("provider id cannot be empty")
		}
		if strings.TrimSpace(desc.URL) == "" {
			return nil, fmt.Errorf("provider %s has no url", id)
		}
		if !desc.Kind.Valid() {
			return nil, fmt.Errorf("provider %s: %w: %q", id, domain.ErrUnknownAdapterKind, desc.Kind)
		}
		if _, exists := providers[id]; exists {
			return nil, fmt.Errorf("provider %s already registered", id)
		}

		desc.ID = id
		desc.Headers = copyHeaders(desc.Headers)
		providers[id] = desc
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return &Registry{
		providers: providers,
		ids:       ids,
	}, nil
}

// Resolve retrieves a provider descriptor by identifier. Surrounding
// whitespace on the identifier is ignored; matching is otherwise exact.
func (r *Registry) Resolve(_ context.Context, providerID string) (*domain.ProviderDescriptor, error) {
	id := strings.TrimSpace(providerID)
	if id == "" {
		return nil, fmt.Errorf("%w: provider name cannot be empty", domain.ErrUnknownProvider)
	}

	desc, exists := r.providers[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, id)
	}

	// Hand out a copy so callers cannot mutate the table.
	desc.Headers = copyHeaders(desc.Headers)
	return &desc, nil
}

// List returns all configured provider identifiers in sorted order.
func (r *Registry) List(_ context.Context) ([]string, error) {
	return append([]string(nil), r.ids...), nil
}

func copyHeaders(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
