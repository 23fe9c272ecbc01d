// Package plans holds the static plan-limit table and its optional JSON
// override file.
package plans

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/maintops/maintops/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// Feature keys gated by plan tier.
type Feature string

const (
	FeatureMaxUsers              Feature = "max_users"
	FeatureMaxCourses            Feature = "max_courses"
	FeatureMaxMaintenanceRecords Feature = "max_maintenance_records"
	FeatureMaxEquipment          Feature = "max_equipment"
)

// KnownFeature reports whether the feature key is gated at all.
func KnownFeature(f Feature) bool {
	switch f {
	case FeatureMaxUsers, FeatureMaxCourses, FeatureMaxMaintenanceRecords, FeatureMaxEquipment:
		return true
	default:
		return false
	}
}

// Limits maps feature keys to a ceiling. A nil entry means unlimited.
type Limits map[Feature]*int

// Table maps plan tiers to their limits.
type Table map[models.Plan]Limits

func limit(v int) *int { return &v }

// Default returns the built-in plan-limit table.
func Default() Table {
	return Table{
		models.PlanFree: Limits{
			FeatureMaxUsers:              limit(3),
			FeatureMaxCourses:            limit(1),
			FeatureMaxMaintenanceRecords: limit(50),
			FeatureMaxEquipment:          limit(10),
		},
		models.PlanPro: Limits{
			FeatureMaxUsers:              limit(25),
			FeatureMaxCourses:            limit(5),
			FeatureMaxMaintenanceRecords: limit(1000),
			FeatureMaxEquipment:          limit(100),
		},
		models.PlanEnterprise: Limits{
			FeatureMaxUsers:              nil,
			FeatureMaxCourses:            nil,
			FeatureMaxMaintenanceRecords: nil,
			FeatureMaxEquipment:          nil,
		},
	}
}

// Limit returns the ceiling for the given plan and feature. Unknown plans
// fall back to the free tier. The second return is false when the feature is
// unlimited under the plan.
func (t Table) Limit(plan models.Plan, feature Feature) (int, bool) {
	limits, ok := t[plan]
	if !ok {
		limits = t[models.PlanFree]
	}

	ceiling, ok := limits[feature]
	if !ok || ceiling == nil {
		return 0, false
	}

	return *ceiling, true
}

// overrideSchema validates a plan-table override file: every entry maps
// feature keys to a non-negative integer or null (unlimited).
const overrideSchema = `{
	"type": "object",
	"additionalProperties": false,
	"patternProperties": {
		"^(free|pro|enterprise)$": {
			"type": "object",
			"additionalProperties": false,
			"patternProperties": {
				"^(max_users|max_courses|max_maintenance_records|max_equipment)$": {
					"type": ["integer", "null"],
					"minimum": 0
				}
			}
		}
	}
}`

// LoadFile reads a JSON override file, validates it against the plan-table
// schema and returns the resulting table. Plans or features absent from the
// file keep their built-in values.
func LoadFile(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plans file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(overrideSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate plans file: %w", err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("invalid plans file %s: %v", path, result.Errors())
	}

	var overrides map[models.Plan]Limits
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse plans file: %w", err)
	}

	table := Default()

	for plan, limits := range overrides {
		if _, ok := table[plan]; !ok {
			table[plan] = Limits{}
		}

		for feature, ceiling := range limits {
			table[plan][feature] = ceiling
		}
	}

	return table, nil
}
