package whitelist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/sg-audit/model"
)

type fakeTopology struct {
	vpcs, subnets, instances, eips []string
	vpcErr, eipErr                 error
}

func (f fakeTopology) GetVpcCidrs(context.Context) ([]string, error)    { return f.vpcs, f.vpcErr }
func (f fakeTopology) GetSubnetCidrs(context.Context) ([]string, error) { return f.subnets, nil }
func (f fakeTopology) GetInstanceAddresses(context.Context) ([]string, error) {
	return f.instances, nil
}
func (f fakeTopology) GetElasticIPs(context.Context) ([]string, error) { return f.eips, f.eipErr }

func TestBuildWhitelistUnion(t *testing.T) {
	topology := fakeTopology{
		vpcs:      []string{"10.0.0.0/16"},
		subnets:   []string{"10.0.1.0/24", "10.0.2.0/24"},
		instances: []string{"10.0.1.10/32", "54.1.2.3/32"},
		eips:      []string{"54.1.2.3/32"},
	}
	static := []string{"203.0.113.0/24", "  ", "198.51.100.7/32"}
	before := append([]string(nil), static...)

	set, failures, err := NewService(topology, 4).BuildWhitelist(context.Background(), static)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, []string{
		"10.0.0.0/16", "10.0.1.0/24", "10.0.1.10/32", "10.0.2.0/24",
		"198.51.100.7/32", "203.0.113.0/24", "54.1.2.3/32",
	}, set.Sorted())
	assert.Equal(t, before, static)
}

func TestBuildWhitelistStaticAlwaysIncluded(t *testing.T) {
	topology := fakeTopology{vpcErr: errors.New("denied"), eipErr: errors.New("denied")}

	set, failures, err := NewService(topology, 1).BuildWhitelist(context.Background(), []string{"203.0.113.5/32"})
	require.NoError(t, err)
	assert.True(t, set.Has("203.0.113.5/32"))
	assert.Equal(t, []string{SourceVpcCidrs, SourceElasticIPs}, model.AdapterSources(failures))
}

func TestBuildWhitelistSkipsExpectedAbsence(t *testing.T) {
	topology := fakeTopology{eipErr: model.ErrExpectedAbsence, subnets: []string{"10.0.1.0/24"}}

	set, failures, err := NewService(topology, 4).BuildWhitelist(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.True(t, set.Has("10.0.1.0/24"))
}

func TestBuildWhitelistCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewService(fakeTopology{}, 4).BuildWhitelist(ctx, []string{"1.1.1.1/32"})
	var cancelErr *model.CancellationError
	assert.True(t, errors.As(err, &cancelErr))
}
