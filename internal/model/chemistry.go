package model

import (
	"fmt"
	"strings"
)

// Chemistry is a battery chemistry family tag.
type Chemistry string

const (
	ChemistryLFP Chemistry = "LFP"
	ChemistryNMC Chemistry = "NMC"
)

// ChemistryProfile holds the per-cell voltage envelope of a chemistry.
// Units: volts. MinVoltage < NominalVoltage < MaxVoltage.
type ChemistryProfile struct {
	Tag            Chemistry `json:"tag" yaml:"tag" msgpack:"tag"`
	MinVoltage     float64   `json:"min_voltage" yaml:"min_voltage" msgpack:"min_voltage"`
	MaxVoltage     float64   `json:"max_voltage" yaml:"max_voltage" msgpack:"max_voltage"`
	NominalVoltage float64   `json:"nominal_voltage" yaml:"nominal_voltage" msgpack:"nominal_voltage"`
}

var chemistryTable = []ChemistryProfile{
	{Tag: ChemistryLFP, MinVoltage: 2.8, MaxVoltage: 3.6, NominalVoltage: 3.2},
	{Tag: ChemistryNMC, MinVoltage: 3.2, MaxVoltage: 4.0, NominalVoltage: 3.6},
}

// LookupChemistry resolves a tag case-insensitively ("lfp" and "LFP" are the same profile).
func LookupChemistry(tag string) (ChemistryProfile, error) {
	want := Chemistry(strings.ToUpper(strings.TrimSpace(tag)))
	for _, p := range chemistryTable {
		if p.Tag == want {
			return p, nil
		}
	}
	return ChemistryProfile{}, fmt.Errorf("%w: %q", ErrUnknownChemistry, tag)
}

// Chemistries returns a copy of the profile table in a stable order.
func Chemistries() []ChemistryProfile {
	out := make([]ChemistryProfile, len(chemistryTable))
	copy(out, chemistryTable)
	return out
}

// Span is MaxVoltage - MinVoltage.
func (p ChemistryProfile) Span() float64 {
	return p.MaxVoltage - p.MinVoltage
}
