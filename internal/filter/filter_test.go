package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/ember/internal/filter"
)

func TestSubstringFilter_ShouldSuppress(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		fragment string
		want     bool
	}{
		{name: "match in middle", token: "Sponsor", fragment: `data: {"content":"a Sponsor b"}`, want: true},
		{name: "no match", token: "Sponsor", fragment: `data: {"content":"hello"}`, want: false},
		{name: "case sensitive", token: "Sponsor", fragment: "sponsor", want: false},
		{name: "empty token disables", token: "", fragment: "anything", want: false},
		{name: "empty fragment", token: "Sponsor", fragment: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filter.NewSubstringFilter(&filter.Config{BannedToken: tt.token})
			require.Equal(t, tt.want, f.ShouldSuppress(tt.fragment))
		})
	}
}

func TestNewSubstringFilter_NilConfig(t *testing.T) {
	f := filter.NewSubstringFilter(nil)
	require.False(t, f.ShouldSuppress("Sponsor"))
}
