// Package transport defines the decoded shapes of the PVWatts simulation payload.
package transport

// SimulationOutputs holds the reference-capacity model outputs used by the
// yield pipeline. The hourly AC series covers one model year (8760 values);
// the monthly series have one value per calendar month.
type SimulationOutputs struct {
	AC             []float64 `json:"ac"`
	ACMonthly      []float64 `json:"ac_monthly"`
	POAMonthly     []float64 `json:"poa_monthly"`
	SolradMonthly  []float64 `json:"solrad_monthly"`
	DCMonthly      []float64 `json:"dc_monthly"`
	ACAnnual       float64   `json:"ac_annual"`
	SolradAnnual   float64   `json:"solrad_annual"`
	CapacityFactor float64   `json:"capacity_factor"`
}
