package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maintops/maintops/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlansFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	table := Default()

	ceiling, limited := table.Limit(models.PlanFree, FeatureMaxCourses)
	assert.True(t, limited)
	assert.Equal(t, 1, ceiling)

	ceiling, limited = table.Limit(models.PlanPro, FeatureMaxCourses)
	assert.True(t, limited)
	assert.Equal(t, 5, ceiling)

	_, limited = table.Limit(models.PlanEnterprise, FeatureMaxUsers)
	assert.False(t, limited)
}

func TestTable_Limit_UnknownPlanFallsBackToFree(t *testing.T) {
	table := Default()

	ceiling, limited := table.Limit(models.Plan("trial"), FeatureMaxUsers)
	assert.True(t, limited)
	assert.Equal(t, 3, ceiling)
}

func TestKnownFeature(t *testing.T) {
	assert.True(t, KnownFeature(FeatureMaxUsers))
	assert.True(t, KnownFeature(FeatureMaxEquipment))
	assert.False(t, KnownFeature(Feature("max_rockets")))
}

func TestLoadFile(t *testing.T) {
	path := writePlansFile(t, `{
		"free": {"max_courses": 2},
		"pro": {"max_users": null}
	}`)

	table, err := LoadFile(path)
	require.NoError(t, err)

	ceiling, limited := table.Limit(models.PlanFree, FeatureMaxCourses)
	assert.True(t, limited)
	assert.Equal(t, 2, ceiling)

	// Overridden to unlimited.
	_, limited = table.Limit(models.PlanPro, FeatureMaxUsers)
	assert.False(t, limited)

	// Untouched entries keep their built-in values.
	ceiling, limited = table.Limit(models.PlanFree, FeatureMaxUsers)
	assert.True(t, limited)
	assert.Equal(t, 3, ceiling)
}

func TestLoadFile_RejectsUnknownPlan(t *testing.T) {
	path := writePlansFile(t, `{"platinum": {"max_users": 100}}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile_RejectsNegativeLimit(t *testing.T) {
	path := writePlansFile(t, `{"free": {"max_users": -1}}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile_RejectsUnknownFeature(t *testing.T) {
	path := writePlansFile(t, `{"free": {"max_rockets": 5}}`)

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
