package model

import (
	"fmt"
	"strings"
)

// Sentinel values used by the security group classifier and renderers.
const (
	ProtocolAllTraffic = "-1"
	CidrAnywhere       = "0.0.0.0/0"
	NoVpcMarker        = "no-vpc"
	ProviderAWS        = "aws"
)

// Severity is the tier attached to an unsafe ingress finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// SecurityGroup is a point-in-time snapshot of an EC2 security group.
// VpcID is nil for groups living in the legacy EC2-Classic network.
type SecurityGroup struct {
	GroupID      string
	GroupName    string
	Description  string
	VpcID        *string
	IngressRules []IngressRule
}

// IngressRule is one inbound permission of a security group.
// FromPort and ToPort are both nil when the rule covers every port.
type IngressRule struct {
	Protocol   string
	FromPort   *int32
	ToPort     *int32
	CidrRanges []string
}

// CallerIdentity identifies the principal the analysis ran as.
type CallerIdentity struct {
	Account string
	Arn     string
	UserID  string
}

// AnalysisReport is the canonical output of one analysis run.
type AnalysisReport struct {
	SecurityGroups SecurityGroupsAnalysis `json:"SecurityGroups" yaml:"SecurityGroups"`
	Metadata       Metadata               `json:"Metadata" yaml:"Metadata"`
}

// SecurityGroupsAnalysis holds the classification result.
type SecurityGroupsAnalysis struct {
	UnusedGroups []UnusedGroup `json:"UnusedGroups" yaml:"UnusedGroups"`
	UnsafeGroups []UnsafeGroup `json:"UnsafeGroups" yaml:"UnsafeGroups"`
}

// UnusedGroup is a security group not referenced by any collected resource.
type UnusedGroup struct {
	GroupName   string `json:"GroupName" yaml:"GroupName"`
	GroupID     string `json:"GroupId" yaml:"GroupId"`
	Description string `json:"Description" yaml:"Description"`
	VpcID       string `json:"VpcId" yaml:"VpcId"`
}

// UnsafeGroup is a security group with at least one ingress source outside the whitelist.
type UnsafeGroup struct {
	GroupName   string          `json:"GroupName" yaml:"GroupName"`
	GroupID     string          `json:"GroupId" yaml:"GroupId"`
	Description string          `json:"Description" yaml:"Description"`
	UnsafePorts []UnsafeIngress `json:"UnsafePorts" yaml:"UnsafePorts"`
}

// UnsafeIngress is one (rule, offending CIDR) finding.
type UnsafeIngress struct {
	Protocol string   `json:"Protocol" yaml:"Protocol"`
	CidrIP   string   `json:"CidrIp" yaml:"CidrIp"`
	FromPort *int32   `json:"FromPort,omitempty" yaml:"FromPort,omitempty"`
	ToPort   *int32   `json:"ToPort,omitempty" yaml:"ToPort,omitempty"`
	Severity Severity `json:"Severity" yaml:"Severity"`
}

// Metadata describes the run that produced a report.
type Metadata struct {
	StartedAt     string        `json:"StartedAt" yaml:"StartedAt"`
	FinishedAt    string        `json:"FinishedAt" yaml:"FinishedAt"`
	CloudProvider CloudProvider `json:"CloudProvider" yaml:"CloudProvider"`
	AccountID     string        `json:"AccountId,omitempty" yaml:"AccountId,omitempty"`
	Region        string        `json:"Region,omitempty" yaml:"Region,omitempty"`
	FailedSources []string      `json:"FailedSources,omitempty" yaml:"FailedSources,omitempty"`
}

// CloudProvider names the provider and the identity used to authenticate.
type CloudProvider struct {
	Name string `json:"Name" yaml:"Name"`
	Auth string `json:"Auth" yaml:"Auth"`
}

// PortRange renders the port span of a finding. A rule without ports covers
// the whole port space.
func (u UnsafeIngress) PortRange() string {
	if u.FromPort == nil && u.ToPort == nil {
		return "0-65535"
	}

	from, to := int32(0), int32(65535)
	if u.FromPort != nil {
		from = *u.FromPort
	}
	if u.ToPort != nil {
		to = *u.ToPort
	}

	if from == to {
		return fmt.Sprintf("%d", from)
	}

	return fmt.Sprintf("%d-%d", from, to)
}

// ProtocolLabel renders the protocol token for humans.
func (u UnsafeIngress) ProtocolLabel() string {
	if u.Protocol == ProtocolAllTraffic {
		return "ALL"
	}
	return strings.ToUpper(u.Protocol)
}

// CountBySeverity counts unsafe findings per tier.
func (a SecurityGroupsAnalysis) CountBySeverity() (warnings, alerts int) {
	for _, g := range a.UnsafeGroups {
		for _, p := range g.UnsafePorts {
			switch p.Severity {
			case SeverityAlert:
				alerts++
			case SeverityWarning:
				warnings++
			}
		}
	}
	return
}
