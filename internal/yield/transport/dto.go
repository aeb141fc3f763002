// Package transport defines the request and response shapes for the yield module.
package transport

import (
	geotransport "solarestimate_backend/internal/geocode/transport"
)

// EstimateRequest is the user submission: postal code, country code and the
// requested nominal system capacity. A capacity of zero or below is
// rejected up front rather than silently passed through the linear scale.
type EstimateRequest struct {
	PostalCode  string  `json:"postalCode" binding:"required" validate:"required"`
	CountryCode string  `json:"countryCode" binding:"required" validate:"required,len=2,alpha"`
	CapacityKW  float64 `json:"capacityKW" binding:"required" validate:"required,gt=0"`
}

// ProxyRequest carries coordinates to the simulation relay endpoint.
type ProxyRequest struct {
	Lat  *float64 `json:"lat" binding:"required"`
	Long *float64 `json:"long" binding:"required"`
}

// MonthlySeries holds the four per-month output families. AC, POA and DC
// are power quantities and are rescaled by the capacity factor; solar
// radiation is an irradiance quantity and passes through unscaled.
type MonthlySeries struct {
	AC     []float64 `json:"ac"`
	POA    []float64 `json:"poa"`
	Solrad []float64 `json:"solrad"`
	DC     []float64 `json:"dc"`
}

// AnnualSummary holds the annual scalars.
type AnnualSummary struct {
	ACAnnual          float64 `json:"acAnnual"`
	SolradAnnual      float64 `json:"solradAnnual"`
	CapacityFactorPct float64 `json:"capacityFactorPct"`
}

// DailyAverage is the mean output of one fixed 24-hour window of the year.
// Day is 1-based and strictly increasing across the series.
type DailyAverage struct {
	Day       int     `json:"day"`
	AverageKW float64 `json:"averageKW"`
}

// YieldBundle is the complete pipeline output for one submission.
type YieldBundle struct {
	Coordinates   geotransport.Coordinates `json:"coordinates"`
	CapacityKW    float64                  `json:"capacityKW"`
	Hourly        []float64                `json:"hourly"`
	Monthly       MonthlySeries            `json:"monthly"`
	Annual        AnnualSummary            `json:"annual"`
	DailyAverages []DailyAverage           `json:"dailyAverages"`
}
