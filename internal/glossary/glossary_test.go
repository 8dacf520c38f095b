package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	entry, ok := Lookup("CAPE")
	require.True(t, ok)
	assert.Equal(t, "CAPE", entry.Term)
	assert.Equal(t, "Simple physics", entry.Category)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	entry, ok := Lookup("  advection ")
	require.True(t, ok)
	assert.Equal(t, "advection", entry.Term)

	entry, ok = Lookup("ndfd")
	require.True(t, ok)
	assert.Equal(t, "NDFD", entry.Term)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("geostrophy")
	assert.False(t, ok)
}

func TestByCategory(t *testing.T) {
	groups := ByCategory()

	require.Contains(t, groups, "Data & forecast basics")
	require.Contains(t, groups, "Post-processing")
	require.Contains(t, groups, "Simple physics")
	require.Contains(t, groups, "NWP concepts")

	total := 0
	for _, entries := range groups {
		total += len(entries)
	}
	assert.Equal(t, len(Entries), total)

	// Insertion order is preserved within a group.
	physics := groups["Simple physics"]
	require.NotEmpty(t, physics)
	assert.Equal(t, "advection", physics[0].Term)
}
