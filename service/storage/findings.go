package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/thirukguru/sg-audit/model"
)

// FindingHash returns the stable identity of a finding across runs.
func FindingHash(kind, groupID, protocol, cidr, ports string) string {
	h := sha256.Sum256([]byte(strings.Join([]string{kind, groupID, protocol, cidr, ports}, "|")))
	return hex.EncodeToString(h[:])
}

// FindingsFromReport flattens a report into one finding per unused group and
// one per unsafe ingress source.
func FindingsFromReport(report model.AnalysisReport) []Finding {
	var out []Finding

	for _, g := range report.SecurityGroups.UnusedGroups {
		out = append(out, Finding{
			Hash:      FindingHash(KindUnusedGroup, g.GroupID, "", "", ""),
			Kind:      KindUnusedGroup,
			GroupID:   g.GroupID,
			GroupName: g.GroupName,
			Severity:  SeverityUnused,
		})
	}

	for _, g := range report.SecurityGroups.UnsafeGroups {
		for _, p := range g.UnsafePorts {
			ports := p.PortRange()
			out = append(out, Finding{
				Hash:      FindingHash(KindUnsafeIngress, g.GroupID, p.Protocol, p.CidrIP, ports),
				Kind:      KindUnsafeIngress,
				GroupID:   g.GroupID,
				GroupName: g.GroupName,
				Protocol:  p.Protocol,
				Cidr:      p.CidrIP,
				Ports:     ports,
				Severity:  string(p.Severity),
			})
		}
	}

	return out
}
