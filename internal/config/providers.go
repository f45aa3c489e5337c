package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davidbz/ember/internal/domain"
	"github.com/davidbz/ember/internal/provider/wrapped"
)

// providersFile is the YAML layout of PROVIDERS_FILE.
type providersFile struct {
	Providers []domain.ProviderDescriptor `yaml:"providers"`
}

// browserHeaders mimic a browser session; the built-in passthrough backend
// rejects requests without them.
//
//nolint:gochecknoglobals // static header set
var browserHeaders = map[string]string{
	"Accept":             "*/*",
	"Accept-Language":    "zh-CN,zh;q=0.9,en;q=0.8",
	"Origin":             "https://ish.junioralive.in",
	"Referer":            "https://ish.junioralive.in/",
	"Sec-Ch-Ua":          `"Not/A)Brand";v="8", "Chromium";v="126", "Microsoft Edge";v="126"`,
	"Sec-Ch-Ua-Mobile":   "?0",
	"Sec-Ch-Ua-Platform": `"Windows"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "cross-site",
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36 Edg/126.0.0.0",
}

// LoadProviders returns the provider table: the YAML file when configured,
// otherwise the built-in backends.
func LoadProviders(cfg *ProvidersConfig) ([]domain.ProviderDescriptor, error) {
	if cfg.File != "" {
		return loadProvidersFile(cfg.File)
	}

	return []domain.ProviderDescriptor{
		{
			ID:         "pollinations",
			URL:        cfg.PollinationsURL,
			Credential: cfg.PollinationsAPIKey,
			Kind:       domain.AdapterPassthrough,
			Headers:    browserHeaders,
		},
		{
			ID:         "puter",
			URL:        cfg.PuterURL,
			Credential: cfg.PuterAPIKey,
			Kind:       domain.AdapterWrappedBuffered,
			Envelope: domain.Envelope{
				Interface: wrapped.DefaultInterface,
				Driver:    wrapped.DefaultDriver,
				Method:    wrapped.DefaultMethod,
			},
		},
	}, nil
}

func loadProvidersFile(path string) ([]domain.ProviderDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read providers file: %w", err)
	}

	var file providersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse providers file %s: %w", path, err)
	}

	if len(file.Providers) == 0 {
		return nil, fmt.Errorf("providers file %s lists no providers", path)
	}

	for i := range file.Providers {
		file.Providers[i].Credential = os.ExpandEnv(file.Providers[i].Credential)
	}

	return file.Providers, nil
}
