// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import "strings"

// Kind identifies a result field kind
type Kind int

// result field kinds
const (
	Unknown Kind = iota
	Displacement
	Velocity
	Force
	Temperature
	Stress
	Strain
	MechStrain
	PlasticStrain
	Energy
	Volume
	ErrorEstimate
)

// String returns the name of a kind
func (o Kind) String() string {
	switch o {
	case Displacement:
		return "displacement"
	case Velocity:
		return "velocity"
	case Force:
		return "force"
	case Temperature:
		return "temperature"
	case Stress:
		return "stress"
	case Strain:
		return "strain"
	case MechStrain:
		return "mechanical strain"
	case PlasticStrain:
		return "equivalent plastic strain"
	case Energy:
		return "energy"
	case Volume:
		return "volume"
	case ErrorEstimate:
		return "error estimate"
	}
	return "unknown"
}

// Location identifies where a result field is evaluated
type Location int

// result field locations
const (
	Nodal Location = iota
	Element
	IntPoint
)

// String returns the name of a location
func (o Location) String() string {
	switch o {
	case Element:
		return "element"
	case IntPoint:
		return "integration point"
	}
	return "nodal"
}

// kindNames maps result entity names, as spelled in field-format blocks and
// tabular-print headers, to kinds. Keys are lowercase
var kindNames = map[string]Kind{

	// field-format block names
	"disp":     Displacement,
	"velo":     Velocity,
	"forc":     Force,
	"ndtemp":   Temperature,
	"stress":   Stress,
	"tostrain": Strain,
	"mestrain": MechStrain,
	"pe":       PlasticStrain,
	"ener":     Energy,
	"error":    ErrorEstimate,

	// tabular-print header phrases
	"displacements":             Displacement,
	"velocities":                Velocity,
	"forces":                    Force,
	"temperatures":              Temperature,
	"stresses":                  Stress,
	"strains":                   Strain,
	"mechanical strains":        MechStrain,
	"equivalent plastic strain": PlasticStrain,
	"internal energy density":   Energy,
	"volume":                    Volume,
}

// KindFromName performs the validated name-to-kind lookup used by the
// parsers. Returns Unknown for names not in the closed set
func KindFromName(name string) Kind {
	if k, ok := kindNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return Unknown
}

// locations maps each kind to the location of its entities in tabular-print
// files. Field-format blocks are always nodal
var locations = map[Kind]Location{
	Displacement:  Nodal,
	Velocity:      Nodal,
	Force:         Nodal,
	Temperature:   Nodal,
	Stress:        IntPoint,
	Strain:        IntPoint,
	MechStrain:    IntPoint,
	PlasticStrain: IntPoint,
	Energy:        IntPoint,
	Volume:        Element,
	ErrorEstimate: Nodal,
}

// defaultNcomp maps each kind to its usual number of components; used to
// detect the integration point column in tabular-print data rows
var defaultNcomp = map[Kind]int{
	Displacement:  3,
	Velocity:      3,
	Force:         3,
	Temperature:   1,
	Stress:        6,
	Strain:        6,
	MechStrain:    6,
	PlasticStrain: 1,
	Energy:        1,
	Volume:        1,
	ErrorEstimate: 1,
}
