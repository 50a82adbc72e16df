package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Announce(InjectedProvider{Info: Info{Name: "MetaMask", RDNS: "io.metamask"}})
	r.Announce(InjectedProvider{Info: Info{Name: "Rabby", RDNS: "io.rabby", UUID: "fixed"}})
	r.Announce(InjectedProvider{Info: Info{Name: "MetaMask Flask", RDNS: "io.metamask"}})

	ps := r.Providers()
	require.Len(t, ps, 2)
	assert.Equal(t, "MetaMask Flask", ps[0].Info.Name)
	assert.NotEmpty(t, ps[0].Info.UUID)
	assert.Equal(t, "fixed", ps[1].Info.UUID)

	p, ok := r.ByRDNS("io.rabby")
	require.True(t, ok)
	assert.Equal(t, "Rabby", p.Info.Name)

	_, ok = r.ByRDNS("app.phantom")
	assert.False(t, ok)
}
