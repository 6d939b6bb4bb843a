package awselasticache

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/sg-audit/model"
)

type mockElastiCacheClient struct {
	clusters    []types.CacheCluster
	cacheGroups []types.CacheSecurityGroup
	clusterErr  error
	classicErr  error
}

func (m *mockElastiCacheClient) DescribeCacheClusters(ctx context.Context, params *elasticache.DescribeCacheClustersInput, optFns ...func(*elasticache.Options)) (*elasticache.DescribeCacheClustersOutput, error) {
	if m.clusterErr != nil {
		return nil, m.clusterErr
	}
	return &elasticache.DescribeCacheClustersOutput{CacheClusters: m.clusters}, nil
}

func (m *mockElastiCacheClient) DescribeCacheSecurityGroups(ctx context.Context, params *elasticache.DescribeCacheSecurityGroupsInput, optFns ...func(*elasticache.Options)) (*elasticache.DescribeCacheSecurityGroupsOutput, error) {
	if m.classicErr != nil {
		return nil, m.classicErr
	}
	return &elasticache.DescribeCacheSecurityGroupsOutput{CacheSecurityGroups: m.cacheGroups}, nil
}

func TestGetAttachedSecurityGroups(t *testing.T) {
	client := &mockElastiCacheClient{clusters: []types.CacheCluster{
		{
			CacheClusterId:      aws.String("legacy"),
			CacheSecurityGroups: []types.CacheSecurityGroupMembership{{CacheSecurityGroupName: aws.String("cache-legacy")}},
		},
		{
			CacheClusterId: aws.String("redis"),
			SecurityGroups: []types.SecurityGroupMembership{{SecurityGroupId: aws.String("sg-redis")}},
		},
	}}

	groups, err := NewServiceWithClient(client).GetAttachedSecurityGroups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cache-legacy", "sg-redis"}, groups)
}

func TestGetAttachedSecurityGroupsErrorIsNotExpectedAbsence(t *testing.T) {
	client := &mockElastiCacheClient{clusterErr: errors.New("AccessDenied")}

	_, err := NewServiceWithClient(client).GetAttachedSecurityGroups(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, model.ErrExpectedAbsence))
}

func TestGetClassicSecurityGroupNames(t *testing.T) {
	client := &mockElastiCacheClient{cacheGroups: []types.CacheSecurityGroup{{
		EC2SecurityGroups: []types.EC2SecurityGroup{
			{EC2SecurityGroupName: aws.String("app-servers")},
			{EC2SecurityGroupName: aws.String("workers")},
		},
	}}}

	names, err := NewServiceWithClient(client).GetClassicSecurityGroupNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app-servers", "workers"}, names)
}

func TestGetClassicSecurityGroupNamesUnavailable(t *testing.T) {
	client := &mockElastiCacheClient{classicErr: &smithy.GenericAPIError{
		Code:    "InvalidParameterValue",
		Message: "Use of cache security groups is not permitted in this API version for your account.",
	}}

	_, err := NewServiceWithClient(client).GetClassicSecurityGroupNames(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrExpectedAbsence)
	assert.Equal(t, "InvalidParameterValue", apiErrorCode(err))
}

func TestGetClassicSecurityGroupNamesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &mockElastiCacheClient{classicErr: context.Canceled}

	_, err := NewServiceWithClient(client).GetClassicSecurityGroupNames(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, model.ErrExpectedAbsence))
}
