package types

import (
	"fmt"
	"strings"
)

// BCFLAG names the boundary condition kinds a face can carry.
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Dirichlet
	BC_Out
	BC_PEC
)

var BCNameMap = map[string]BCFLAG{
	"none":      BC_None,
	"dirichlet": BC_Dirichlet,
	"inflow":    BC_Dirichlet,
	"in":        BC_Dirichlet,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"freeflow":  BC_Out,
	"pec":       BC_PEC,
	"wall":      BC_PEC,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_None:
		return "None"
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_Out:
		return "Outflow"
	case BC_PEC:
		return "PEC"
	}
	return fmt.Sprintf("BCFLAG(%d)", uint8(bc))
}

// ParseBCFLAG accepts any of the names in BCNameMap, case insensitive.
func ParseBCFLAG(name string) (bc BCFLAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown boundary condition name: %q", name)
	}
	return
}
