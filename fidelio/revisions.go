// Copyright (c) 2024 The Fidelio Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package fidelio

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Revision is an enumeration for EVM specification revisions (aka. Hard-Forks).
// Revisions are totally ordered; all revision-gated behavior in the
// interpreter is expressed as a comparison against this order.
type Revision int

// The list of supported revisions. Muir Glacier changed no instruction
// semantics and thus carries no tag of its own.
const (
	R00_Frontier Revision = iota
	R01_Homestead
	R02_TangerineWhistle
	R03_SpuriousDragon
	R04_Byzantium
	R05_Constantinople
	R06_Petersburg
	R07_Istanbul
	R09_Berlin
	R10_London
	numRevisions int = iota
)

func (r Revision) String() string {
	switch r {
	case R00_Frontier:
		return "Frontier"
	case R01_Homestead:
		return "Homestead"
	case R02_TangerineWhistle:
		return "TangerineWhistle"
	case R03_SpuriousDragon:
		return "SpuriousDragon"
	case R04_Byzantium:
		return "Byzantium"
	case R05_Constantinople:
		return "Constantinople"
	case R06_Petersburg:
		return "Petersburg"
	case R07_Istanbul:
		return "Istanbul"
	case R09_Berlin:
		return "Berlin"
	case R10_London:
		return "London"
	default:
		return fmt.Sprintf("Revision(%d)", r)
	}
}

// GetAllKnownRevisions returns all revisions in their total order, oldest
// first. Keeping the list centralized allows future upgrades to be added
// without touching individual instruction handlers.
func GetAllKnownRevisions() []Revision {
	res := make([]Revision, 0, numRevisions)
	for i := 0; i < numRevisions; i++ {
		res = append(res, Revision(i))
	}
	return res
}

func (r Revision) MarshalJSON() ([]byte, error) {
	revString := r.String()
	reg := regexp.MustCompile(`Revision\([0-9]+\)`)
	if reg.MatchString(revString) {
		return nil, &json.UnsupportedValueError{}
	}
	return json.Marshal(revString)
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}

	for _, revision := range GetAllKnownRevisions() {
		if revision.String() == s {
			*r = revision
			return nil
		}
	}
	return &json.InvalidUnmarshalError{}
}
