package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRenderDatabaseYML(t *testing.T) {
	out, err := RenderDatabaseYML(testConfig(), "p@ss: word")
	require.NoError(t, err)

	var doc map[string]databaseEntry
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, databaseEntry{
		Adapter:  "mysql2",
		Encoding: "utf8",
		Database: "onebody",
		Username: "onebody",
		Password: "p@ss: word",
		Host:     "localhost",
	}, doc["production"])
}

func TestRenderLinks(t *testing.T) {
	cfg := testConfig()
	cfg.UseSSL = true

	out, err := RenderLinks(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "protocol: 'https'")
	assert.Contains(t, string(out), "asset_host = 'https://church.example.com'")
}
