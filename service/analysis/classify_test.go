package analysis

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/sg-audit/model"
)

func sshRule(cidrs ...string) model.IngressRule {
	return model.IngressRule{Protocol: "tcp", FromPort: aws.Int32(22), ToPort: aws.Int32(22), CidrRanges: cidrs}
}

func TestClassifyUnusedWithoutVpc(t *testing.T) {
	groups := []model.SecurityGroup{{GroupID: "sg-1", GroupName: "web", Description: "web tier"}}

	got := Classify(groups, model.NewStringSet(), model.NewStringSet())

	require.Len(t, got.UnusedGroups, 1)
	assert.Equal(t, model.UnusedGroup{GroupName: "web", GroupID: "sg-1", Description: "web tier", VpcID: "no-vpc"}, got.UnusedGroups[0])
	assert.Empty(t, got.UnsafeGroups)
	assert.NotNil(t, got.UnsafeGroups)
}

func TestClassifyAttachmentByIDOrName(t *testing.T) {
	groups := []model.SecurityGroup{
		{GroupID: "sg-1", GroupName: "web", VpcID: aws.String("vpc-1")},
		{GroupID: "sg-2", GroupName: "legacy", VpcID: aws.String("vpc-1")},
		{GroupID: "sg-3", GroupName: "orphan", VpcID: aws.String("vpc-1")},
	}
	attached := model.NewStringSet("sg-1", "legacy")

	got := Classify(groups, attached, model.NewStringSet())

	require.Len(t, got.UnusedGroups, 1)
	assert.Equal(t, "sg-3", got.UnusedGroups[0].GroupID)
	assert.Equal(t, "vpc-1", got.UnusedGroups[0].VpcID)
}

func TestClassifyUnsafeIngress(t *testing.T) {
	tests := []struct {
		name      string
		rule      model.IngressRule
		whitelist model.StringSet
		want      []model.UnsafeIngress
	}{
		{
			name:      "world-open ssh is an alert",
			rule:      sshRule("0.0.0.0/0"),
			whitelist: model.NewStringSet("10.0.0.0/16"),
			want: []model.UnsafeIngress{{
				Protocol: "tcp", CidrIP: "0.0.0.0/0", FromPort: aws.Int32(22), ToPort: aws.Int32(22), Severity: model.SeverityAlert,
			}},
		},
		{
			name:      "unknown host is a warning",
			rule:      sshRule("203.0.113.5/32"),
			whitelist: model.NewStringSet(),
			want: []model.UnsafeIngress{{
				Protocol: "tcp", CidrIP: "203.0.113.5/32", FromPort: aws.Int32(22), ToPort: aws.Int32(22), Severity: model.SeverityWarning,
			}},
		},
		{
			name:      "all protocols is an alert for any source",
			rule:      model.IngressRule{Protocol: "-1", CidrRanges: []string{"198.51.100.0/24"}},
			whitelist: model.NewStringSet(),
			want: []model.UnsafeIngress{{
				Protocol: "-1", CidrIP: "198.51.100.0/24", Severity: model.SeverityAlert,
			}},
		},
		{
			name:      "whitelisted sources produce nothing",
			rule:      sshRule("10.0.0.0/16"),
			whitelist: model.NewStringSet("10.0.0.0/16"),
		},
		{
			name:      "membership is exact, not containment",
			rule:      sshRule("10.0.1.0/24"),
			whitelist: model.NewStringSet("10.0.0.0/16"),
			want: []model.UnsafeIngress{{
				Protocol: "tcp", CidrIP: "10.0.1.0/24", FromPort: aws.Int32(22), ToPort: aws.Int32(22), Severity: model.SeverityWarning,
			}},
		},
		{
			name:      "rule without cidrs contributes nothing",
			rule:      model.IngressRule{Protocol: "tcp", FromPort: aws.Int32(443), ToPort: aws.Int32(443)},
			whitelist: model.NewStringSet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := []model.SecurityGroup{{
				GroupID:      "sg-2",
				GroupName:    "ssh",
				IngressRules: []model.IngressRule{tt.rule},
			}}

			got := Classify(groups, model.NewStringSet("sg-2"), tt.whitelist)

			assert.Empty(t, got.UnusedGroups)
			if len(tt.want) == 0 {
				assert.Empty(t, got.UnsafeGroups)
				return
			}
			require.Len(t, got.UnsafeGroups, 1)
			assert.Equal(t, "sg-2", got.UnsafeGroups[0].GroupID)
			assert.Equal(t, tt.want, got.UnsafeGroups[0].UnsafePorts)
		})
	}
}

func TestClassifyOneFindingPerCidr(t *testing.T) {
	groups := []model.SecurityGroup{{
		GroupID: "sg-1",
		IngressRules: []model.IngressRule{
			sshRule("0.0.0.0/0", "10.0.0.0/16", "203.0.113.9/32"),
			{Protocol: "udp", FromPort: aws.Int32(53), ToPort: aws.Int32(53), CidrRanges: []string{"203.0.113.9/32"}},
		},
	}}

	got := Classify(groups, model.NewStringSet(), model.NewStringSet("10.0.0.0/16"))

	require.Len(t, got.UnsafeGroups, 1)
	ports := got.UnsafeGroups[0].UnsafePorts
	require.Len(t, ports, 3)
	assert.Equal(t, "0.0.0.0/0", ports[0].CidrIP)
	assert.Equal(t, "203.0.113.9/32", ports[1].CidrIP)
	assert.Equal(t, "udp", ports[2].Protocol)

	warnings, alerts := got.CountBySeverity()
	assert.Equal(t, 2, warnings)
	assert.Equal(t, 1, alerts)
}

func TestClassifyGroupCanBeUnusedAndUnsafe(t *testing.T) {
	groups := []model.SecurityGroup{{GroupID: "sg-1", GroupName: "open", IngressRules: []model.IngressRule{sshRule("0.0.0.0/0")}}}

	got := Classify(groups, model.NewStringSet(), model.NewStringSet())

	assert.Len(t, got.UnusedGroups, 1)
	assert.Len(t, got.UnsafeGroups, 1)
}

func TestClassifyDoesNotAliasRulePorts(t *testing.T) {
	rule := sshRule("0.0.0.0/0")
	groups := []model.SecurityGroup{{GroupID: "sg-1", IngressRules: []model.IngressRule{rule}}}

	got := Classify(groups, model.NewStringSet(), model.NewStringSet())
	*rule.FromPort = 2222

	assert.Equal(t, int32(22), *got.UnsafeGroups[0].UnsafePorts[0].FromPort)
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		protocol, cidr string
		want           model.Severity
	}{
		{"tcp", "0.0.0.0/0", model.SeverityAlert},
		{"-1", "10.0.0.0/8", model.SeverityAlert},
		{"-1", "0.0.0.0/0", model.SeverityAlert},
		{"tcp", "203.0.113.5/32", model.SeverityWarning},
		{"udp", "192.0.2.0/24", model.SeverityWarning},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.protocol, tt.cidr), "%s %s", tt.protocol, tt.cidr)
	}
}
