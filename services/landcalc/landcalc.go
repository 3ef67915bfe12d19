package landcalc

import (
	"fmt"
	"math"
)

// Regional land-area conversion constants.
const (
	SqFtPerKatha   = 720.0
	SqFtPerDecimal = 435.6
)

// Result holds a computed land area in the three units the business uses.
type Result struct {
	AreaSqFt    float64 `json:"area_sq_ft"`
	AreaKatha   float64 `json:"area_katha"`
	AreaDecimal float64 `json:"area_decimal"`
}

// Area computes the trapezoid approximation surveyors use in the field:
// mean of the opposite side pairs, multiplied. All sides are in feet.
// Square feet are rounded to the two-decimal display rule before saving;
// katha and decimal keep four places.
func Area(northFt, southFt, eastFt, westFt float64) (Result, error) {
	for _, side := range []float64{northFt, southFt, eastFt, westFt} {
		if side <= 0 || math.IsNaN(side) || math.IsInf(side, 0) {
			return Result{}, fmt.Errorf("all side lengths must be positive, got %v", side)
		}
	}

	sqFt := round2(((northFt + southFt) / 2) * ((eastFt + westFt) / 2))

	return Result{
		AreaSqFt:    sqFt,
		AreaKatha:   round4(sqFt / SqFtPerKatha),
		AreaDecimal: round4(sqFt / SqFtPerDecimal),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
