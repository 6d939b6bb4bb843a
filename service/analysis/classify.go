// Package analysis classifies security groups as unused or unsafe and
// assembles the final report.
package analysis

import (
	"github.com/thirukguru/sg-audit/model"
)

// Classify runs the unused and unsafe tests over every group. The two tests are
// independent, so a group can appear in both lists. Output follows the order
// of groups.
func Classify(groups []model.SecurityGroup, attached, whitelist model.StringSet) model.SecurityGroupsAnalysis {
	result := model.SecurityGroupsAnalysis{
		UnusedGroups: []model.UnusedGroup{},
		UnsafeGroups: []model.UnsafeGroup{},
	}

	for _, g := range groups {
		if isUnused(g, attached) {
			result.UnusedGroups = append(result.UnusedGroups, model.UnusedGroup{
				GroupName:   g.GroupName,
				GroupID:     g.GroupID,
				Description: g.Description,
				VpcID:       vpcOrMarker(g.VpcID),
			})
		}

		if findings := unsafeIngress(g, whitelist); len(findings) > 0 {
			result.UnsafeGroups = append(result.UnsafeGroups, model.UnsafeGroup{
				GroupName:   g.GroupName,
				GroupID:     g.GroupID,
				Description: g.Description,
				UnsafePorts: findings,
			})
		}
	}

	return result
}

// SeverityFor tiers a single finding. All-protocol rules and world-open
// sources are alerts, everything else is a warning.
func SeverityFor(protocol, cidr string) model.Severity {
	if protocol == model.ProtocolAllTraffic || cidr == model.CidrAnywhere {
		return model.SeverityAlert
	}
	return model.SeverityWarning
}

// isUnused reports whether neither the id nor the name of g is referenced.
// Legacy APIs reference groups by name.
func isUnused(g model.SecurityGroup, attached model.StringSet) bool {
	return !attached.Has(g.GroupID) && !attached.Has(g.GroupName)
}

func unsafeIngress(g model.SecurityGroup, whitelist model.StringSet) []model.UnsafeIngress {
	var findings []model.UnsafeIngress
	for _, rule := range g.IngressRules {
		for _, cidr := range rule.CidrRanges {
			if whitelist.Has(cidr) {
				continue
			}
			findings = append(findings, model.UnsafeIngress{
				Protocol: rule.Protocol,
				CidrIP:   cidr,
				FromPort: copyPort(rule.FromPort),
				ToPort:   copyPort(rule.ToPort),
				Severity: SeverityFor(rule.Protocol, cidr),
			})
		}
	}
	return findings
}

func vpcOrMarker(vpcID *string) string {
	if vpcID == nil || *vpcID == "" {
		return model.NoVpcMarker
	}
	return *vpcID
}

func copyPort(p *int32) *int32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
