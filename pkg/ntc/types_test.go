package ntc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseType(t *testing.T) {
	got, err := ParseType("ntcg164jf103ft1s")
	require.NoError(t, err)
	assert.Equal(t, TypeNTCG164JF103FT1S, got)

	_, err = ParseType("PT100")
	assert.Error(t, err)

	assert.Equal(t, "Unknown", Type(99).String())
}

func TestTypeAndMethodYAML(t *testing.T) {
	var doc struct {
		Type   Type   `yaml:"type"`
		Method Method `yaml:"method"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("type: Custom\nmethod: lookup_table\n"), &doc))
	assert.Equal(t, TypeCustom, doc.Type)
	assert.Equal(t, MethodLookupTable, doc.Method)

	err := yaml.Unmarshal([]byte("method: spline\n"), &doc)
	assert.Error(t, err)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "type: Custom\nmethod: lookup_table\n", string(out))
}
