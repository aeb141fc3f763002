package service

import (
	pvtransport "solarestimate_backend/internal/pvwatts/transport"
	"solarestimate_backend/internal/yield/transport"
)

// referenceCapacityDivisorKW is the fixed divisor of the linear rescale.
// The upstream model runs at a 1 kW reference while the requested capacity
// is divided by 1000; the unit mismatch is inherited behavior and is kept
// exactly as-is.
const referenceCapacityDivisorKW = 1000.0

const (
	hoursPerDay = 24
	daysPerYear = 365
)

// ScaleFactor returns the linear multiplier for a requested capacity.
func ScaleFactor(capacityKW float64) float64 {
	return capacityKW / referenceCapacityDivisorKW
}

// ScaleSeries returns a new slice with every value multiplied by factor.
// The input is never mutated.
func ScaleSeries(series []float64, factor float64) []float64 {
	if series == nil {
		return nil
	}
	scaled := make([]float64, len(series))
	for i, v := range series {
		scaled[i] = v * factor
	}
	return scaled
}

// DailyAverages partitions an hourly series into fixed non-overlapping
// 24-hour windows and averages each window. The windowing ignores calendar
// month and leap-year boundaries. A full 8760-hour year produces exactly
// 365 entries; a shorter input produces one entry per window that contains
// at least one value, with the trailing window averaged over however many
// values remain.
func DailyAverages(hourly []float64) []transport.DailyAverage {
	if len(hourly) == 0 {
		return []transport.DailyAverage{}
	}

	days := (len(hourly) + hoursPerDay - 1) / hoursPerDay
	if days > daysPerYear {
		days = daysPerYear
	}

	averages := make([]transport.DailyAverage, 0, days)
	for day := 1; day <= days; day++ {
		start := (day - 1) * hoursPerDay
		end := start + hoursPerDay
		if end > len(hourly) {
			end = len(hourly)
		}

		var sum float64
		for _, v := range hourly[start:end] {
			sum += v
		}

		averages = append(averages, transport.DailyAverage{
			Day:       day,
			AverageKW: sum / float64(end-start),
		})
	}

	return averages
}

// BuildBundle rescales the reference simulation outputs to the requested
// capacity and derives the daily-average view. Power series (hourly AC,
// monthly AC/POA/DC, annual AC) are scaled; irradiance quantities and the
// capacity factor pass through untouched. Pure: identical inputs always
// produce an identical bundle.
func BuildBundle(outputs *pvtransport.SimulationOutputs, capacityKW float64) *transport.YieldBundle {
	factor := ScaleFactor(capacityKW)
	hourly := ScaleSeries(outputs.AC, factor)

	return &transport.YieldBundle{
		CapacityKW: capacityKW,
		Hourly:     hourly,
		Monthly: transport.MonthlySeries{
			AC:     ScaleSeries(outputs.ACMonthly, factor),
			POA:    ScaleSeries(outputs.POAMonthly, factor),
			Solrad: append([]float64(nil), outputs.SolradMonthly...),
			DC:     ScaleSeries(outputs.DCMonthly, factor),
		},
		Annual: transport.AnnualSummary{
			ACAnnual:          outputs.ACAnnual * factor,
			SolradAnnual:      outputs.SolradAnnual,
			CapacityFactorPct: outputs.CapacityFactor,
		},
		DailyAverages: DailyAverages(hourly),
	}
}
