package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()

	assert.Equal(s.T(), "0.0.0.0:3000", config.Gateway.RESTListenAddress)
	assert.Equal(s.T(), "forestledger", config.Database.Name)
	assert.Equal(s.T(), "FLT", config.Token.Currency)
	assert.Equal(s.T(), "1000000000", config.Token.TrustLineLimit)
	assert.Equal(s.T(), "500000000", config.Token.InitialSupply)
	assert.Equal(s.T(), "forestledger.org", config.Token.Domain)
	assert.Equal(s.T(), uint32(20), config.Xrpl.LedgerOffset)
	assert.False(s.T(), config.Gateway.StrictStatusTransitions)
}

func (s *ConfigTestSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
		"Gateway": {"RESTListenAddress": "127.0.0.1:9999"},
		"Token": {"Currency": "TST"}
	}`), 0o644)
	assert.Nil(s.T(), err)

	config, err := Load(path)
	assert.Nil(s.T(), err)
	assert.Equal(s.T(), "127.0.0.1:9999", config.Gateway.RESTListenAddress)
	assert.Equal(s.T(), "TST", config.Token.Currency)

	// Untouched values keep their defaults
	assert.Equal(s.T(), "forestledger", config.Database.Name)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv("FORESTLEDGER_TOKEN_CURRENCY", "ENV")
	s.T().Setenv("FORESTLEDGER_GATEWAY_STRICT_STATUS_TRANSITIONS", "true")

	config := Default()
	assert.Equal(s.T(), "ENV", config.Token.Currency)
	assert.True(s.T(), config.Gateway.StrictStatusTransitions)
}
