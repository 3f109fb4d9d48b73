package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fixture = `
accounts:
  - name: Platform Admin
    email: admin@example.com
    mobile: "9999999999"
    address: "0x2222222222222222222222222222222222222222"
    role: admin
  - name: Event Issuer
    email: issuer@example.com
    role: issuer
`

func TestConfigUnmarshal(t *testing.T) {
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(fixture), &cfg))

	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, "admin@example.com", cfg.Accounts[0].Email)
	assert.Equal(t, "admin", cfg.Accounts[0].Role)
	assert.Empty(t, cfg.Accounts[1].Address)
}

func TestAccountValidate(t *testing.T) {
	assert.NoError(t, AccountDef{Name: "A", Email: "a@example.com"}.validate())
	assert.NoError(t, AccountDef{Name: "A", Email: "a@example.com", Role: "issuer"}.validate())
	assert.Error(t, AccountDef{Email: "a@example.com"}.validate())
	assert.Error(t, AccountDef{Name: "A", Email: "a@example.com", Role: "superuser"}.validate())
}
