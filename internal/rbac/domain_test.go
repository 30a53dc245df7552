package rbac

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActionValid(t *testing.T) {
	for _, a := range Actions() {
		require.True(t, a.Valid(), a)
	}
	require.False(t, Action("").Valid())
	require.False(t, Action("READ").Valid())
	require.False(t, Action("approve").Valid())
}

func TestCanonicalSets(t *testing.T) {
	require.Len(t, Actions(), 4)
	require.Len(t, Modules(), 5)
	require.Equal(t, []string{ModuleUsers, ModuleGroups, ModuleRoles, ModuleModules, ModulePermissions}, Modules())
}
