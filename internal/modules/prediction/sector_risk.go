package prediction

import "github.com/aristath/loansentry/internal/domain"

// SectorRiskTable maps sectors to volatility multipliers applied to the
// sector component of the default probability. Multipliers live in external
// configuration so new sectors can be added without code changes.
type SectorRiskTable map[domain.Sector]float64

// DefaultSectorRiskTable returns the built-in multiplier table, used when no
// configuration file overrides it.
func DefaultSectorRiskTable() SectorRiskTable {
	return SectorRiskTable{
		domain.SectorAgriculture:    1.2,
		domain.SectorManufacturing:  1.0,
		domain.SectorRetail:         1.1,
		domain.SectorServices:       1.0,
		domain.SectorTechnology:     0.9,
		domain.SectorConstruction:   1.3,
		domain.SectorInfrastructure: 1.4,
		domain.SectorHealthcare:     0.95,
	}
}

// Multiplier returns the configured multiplier for a sector, or 1.0 for
// sectors absent from the table.
func (t SectorRiskTable) Multiplier(sector domain.Sector) float64 {
	if t == nil {
		return 1.0
	}
	if m, ok := t[sector]; ok && m > 0 {
		return m
	}
	return 1.0
}
