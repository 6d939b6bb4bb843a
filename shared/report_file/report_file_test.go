package reportfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonReport = `{
    "SecurityGroups": {
        "UnusedGroups": [{"GroupName": "web", "GroupId": "sg-1", "Description": "", "VpcId": "no-vpc"}],
        "UnsafeGroups": [{
            "GroupName": "ssh", "GroupId": "sg-2", "Description": "",
            "UnsafePorts": [{"Protocol": "tcp", "CidrIp": "0.0.0.0/0", "FromPort": 22, "ToPort": 22, "Severity": "alert"}]
        }]
    },
    "Metadata": {
        "StartedAt": "2024-05-01T10:00:00Z",
        "FinishedAt": "2024-05-01T10:00:05Z",
        "CloudProvider": {"Name": "aws", "Auth": "arn"}
    }
}`

const ymlReport = `SecurityGroups:
    UnusedGroups: []
    UnsafeGroups:
        - GroupName: all
          GroupId: sg-3
          Description: ""
          UnsafePorts:
            - Protocol: "-1"
              CidrIp: 198.51.100.0/24
              Severity: alert
Metadata:
    StartedAt: "2024-05-01T10:00:00Z"
    FinishedAt: "2024-05-01T10:00:05Z"
    CloudProvider:
        Name: aws
        Auth: arn
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadJSON(t *testing.T) {
	report, err := Load(write(t, "analysis.json", jsonReport))
	require.NoError(t, err)

	assert.Equal(t, "no-vpc", report.SecurityGroups.UnusedGroups[0].VpcID)
	port := report.SecurityGroups.UnsafeGroups[0].UnsafePorts[0]
	assert.Equal(t, "22", port.PortRange())
	assert.Equal(t, "alert", string(port.Severity))
}

func TestLoadYAML(t *testing.T) {
	for _, name := range []string{"analysis.yml", "analysis.YAML"} {
		report, err := Load(write(t, name, ymlReport))
		require.NoError(t, err, name)

		port := report.SecurityGroups.UnsafeGroups[0].UnsafePorts[0]
		assert.Equal(t, "-1", port.Protocol)
		assert.Nil(t, port.FromPort)
		assert.Equal(t, "aws", report.Metadata.CloudProvider.Name)
	}
}

func TestLoadMissingExtension(t *testing.T) {
	_, err := Load(write(t, "analysis", jsonReport))
	assert.ErrorIs(t, err, ErrFileExtensionMissing)

	_, err = Load(write(t, "analysis.txt", jsonReport))
	assert.ErrorIs(t, err, ErrFileExtensionMissing)
}

func TestLoadInvalidContent(t *testing.T) {
	_, err := Load(write(t, "analysis.json", "{not json"))
	assert.ErrorContains(t, err, "failed to parse analysis file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "failed to read analysis file")
}
