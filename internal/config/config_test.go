package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dssp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
service:
  address: https://dss.example.com/dss
  signatureType: urn:be:e-contract:dssp:signature:pades-baseline
  timeout: 45s

auth:
  username: app
  password: secret

storage:
  type: mongodb
  mongodb:
    uri: mongodb://localhost:27017
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dss.example.com/dss", cfg.Service.Address)
	assert.Equal(t, 45*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "mongodb", cfg.Storage.Type)
	assert.Equal(t, "dssp", cfg.Storage.MongoDB.Database)
	assert.Equal(t, "info", cfg.Logging.Level)

	creds, err := cfg.Credentials()
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "app", creds.Username)
	assert.Equal(t, "secret", creds.Password)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_DSS_PASSWORD", "from-env")

	path := writeConfig(t, `
service:
  address: https://dss.example.com/dss
auth:
  username: app
  password: ${TEST_DSS_PASSWORD}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Password)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
service:
  address: https://dss.example.com/dss
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Service.Timeout)
	assert.Equal(t, "memory", cfg.Storage.Type)

	// No auth section means anonymous
	creds, err := cfg.Credentials()
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing address",
			content: "service: {}\n",
			wantErr: "service.address is required",
		},
		{
			name: "credential mode conflict",
			content: `
service:
  address: https://dss.example.com/dss
auth:
  username: app
  password: secret
  keystore:
    path: client.p12
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "incomplete username token",
			content: `
service:
  address: https://dss.example.com/dss
auth:
  username: app
`,
			wantErr: "configured together",
		},
		{
			name: "unknown storage type",
			content: `
service:
  address: https://dss.example.com/dss
storage:
  type: postgres
`,
			wantErr: "storage.type",
		},
		{
			name: "mongodb without uri",
			content: `
service:
  address: https://dss.example.com/dss
storage:
  type: mongodb
`,
			wantErr: "storage.mongodb.uri is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
