// SPDX-License-Identifier: MIT
package geometry

import (
	"fmt"
	"math"
)

// Material holds the physical constants of the powder bed, the laser and the
// explicit scheme. All values are SI.
type Material struct {
	// kt, W/(m·K).
	Conductivity float64 `json:"conductivity" yaml:"conductivity"`
	// rho, kg/m³.
	Density float64 `json:"density" yaml:"density"`
	// Cp, J/(kg·K).
	HeatCapacity float64 `json:"heat_capacity" yaml:"heat_capacity"`
	// Absorbed laser power P, W.
	LaserPower float64 `json:"laser_power" yaml:"laser_power"`
	// Powder temperature before the first move, K.
	InitialTemp float64 `json:"initial_temp" yaml:"initial_temp"`
	// Surrounding gas temperature, K.
	AmbientTemp float64 `json:"ambient_temp" yaml:"ambient_temp"`
	// Melting point used to normalize accuracy, K.
	MeltTemp float64 `json:"melt_temp" yaml:"melt_temp"`
	// h, W/(m²·K).
	Convection float64 `json:"convection" yaml:"convection"`
	// v_s, m/s.
	ScanSpeed float64 `json:"scan_speed" yaml:"scan_speed"`
	// dx, m.
	SpatialStep float64 `json:"spatial_step" yaml:"spatial_step"`
}

// Literal parameters: steel powder under a 180 W laser at 37% absorptivity.
const (
	defaultConductivity = 24
	defaultDensity      = 7800
	defaultHeatCapacity = 460
	defaultLaserPower   = 180 * 0.37
	defaultInitialTemp  = 293
	defaultAmbientTemp  = 293
	defaultMeltTemp     = 273 + 1427
	defaultConvection   = 20
	defaultScanSpeed    = 0.6
	defaultSpatialStep  = 200e-6
)

// DefaultMaterial returns the literal material parameters of the game.
func DefaultMaterial() Material {
	return Material{
		Conductivity: defaultConductivity,
		Density:      defaultDensity,
		HeatCapacity: defaultHeatCapacity,
		LaserPower:   defaultLaserPower,
		InitialTemp:  defaultInitialTemp,
		AmbientTemp:  defaultAmbientTemp,
		MeltTemp:     defaultMeltTemp,
		Convection:   defaultConvection,
		ScanSpeed:    defaultScanSpeed,
		SpatialStep:  defaultSpatialStep,
	}
}

// Validate reports ErrInvalidConfiguration when any constant is not a
// positive finite number.
func (m Material) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"conductivity", m.Conductivity},
		{"density", m.Density},
		{"heat_capacity", m.HeatCapacity},
		{"laser_power", m.LaserPower},
		{"initial_temp", m.InitialTemp},
		{"ambient_temp", m.AmbientTemp},
		{"melt_temp", m.MeltTemp},
		{"convection", m.Convection},
		{"scan_speed", m.ScanSpeed},
		{"spatial_step", m.SpatialStep},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return fmt.Errorf("material %s=%v: %w", f.name, f.v, ErrInvalidConfiguration)
		}
	}

	return nil
}

// Diffusivity returns alpha = kt / (rho·Cp).
func (m Material) Diffusivity() float64 {
	return m.Conductivity / (m.Density * m.HeatCapacity)
}

// TimeStep returns the dwell time of the laser on one fine cell, dx / v_s.
func (m Material) TimeStep() float64 {
	return m.SpatialStep / m.ScanSpeed
}

// Coefficients returns the dimensionless numbers of the explicit scheme:
//
//	F = alpha·dt / dx²           (diffusion)
//	G = alpha·P·dt / (kt·dx³)    (laser source per unit impulse)
//	H = alpha·h·dt / (kt·dx)     (convective loss)
func (m Material) Coefficients() (f, g, h float64) {
	alpha := m.Diffusivity()
	dt := m.TimeStep()
	dx := m.SpatialStep
	f = alpha * dt / dx / dx
	g = alpha * m.LaserPower * dt / m.Conductivity / dx / dx / dx
	h = alpha * m.Convection * dt / m.Conductivity / dx

	return f, g, h
}
