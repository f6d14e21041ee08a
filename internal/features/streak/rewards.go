// Package streak — rewards.go содержит логику расчёта множителя награды за стрик.
package streak

import "math"

// MultiplierBase — во сколько раз растёт награда за каждый день серии.
const MultiplierBase = 1.1

// Multiplier вычисляет множитель награды для серии длиной streak.
//
// Рост сложный, а не линейный:
//
//	День 0: 1.0
//	День 1: 1.1
//	День 2: 1.21
//	День 5: ~1.61
//	День 10: ~2.59
func Multiplier(streak int) float64 {
	if streak <= 0 {
		return 1.0
	}
	return math.Pow(MultiplierBase, float64(streak))
}
