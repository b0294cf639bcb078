package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversKnownRules(t *testing.T) {
	catalog := Default()

	for _, code := range []string{"DQ-01", "DQ-02", "DQ-03", "DQ-04", "DQ-05", "DQ-C01", "DQ-A01", "DQ-A02"} {
		def, ok := catalog.Lookup(code)
		require.True(t, ok, "missing definition for %s", code)
		assert.Equal(t, code, def.Code)
		assert.NotEmpty(t, def.Title)
		assert.NotEmpty(t, def.Meaning)
		assert.NotEmpty(t, def.Risk)
		assert.NotEmpty(t, def.OwnerHint)
	}
}

func TestLookup_UnknownCode(t *testing.T) {
	_, ok := Default().Lookup("DQ-99")
	assert.False(t, ok)
}
