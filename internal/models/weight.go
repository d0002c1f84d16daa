// ABOUTME: Weight unit conversion and display helpers.
// ABOUTME: Canonical unit is kg; per-side values derive from the bar weight.
package models

const kgPerLb = 0.45359237

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 { return kg / kgPerLb }

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 { return lb * kgPerLb }

// PerSideKg returns the plate weight loaded on each side of a bar for the
// given total. Negative results are clamped to zero (total below bar weight).
func PerSideKg(totalKg, barWeightKg float64) float64 {
	side := (totalKg - barWeightKg) / 2
	if side < 0 {
		return 0
	}
	return side
}

// TotalFromPerSideKg returns the total weight for a per-side plate load.
func TotalFromPerSideKg(perSideKg, barWeightKg float64) float64 {
	return barWeightKg + perSideKg*2
}
