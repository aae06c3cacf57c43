package model

import (
	"unsafe"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// locationScaled calls a procedure laid out as (kindID, count,
// locations[], factor, values[], status), the shape shared by the
// supply requirement and shortage getters.
func (m *Model) locationScaled(proc string, kindID int, locations []int, factor float64) ([]float64, error) {
	id := int32(kindID)
	n := int32(len(locations))
	list := fortran.Int32s(locations)
	values := make([]float64, len(locations))
	err := m.call(proc,
		unsafe.Pointer(&id),
		unsafe.Pointer(&n),
		fortran.Ptr(list),
		unsafe.Pointer(&factor),
		fortran.Ptr(values),
	)
	if err != nil {
		return nil, err
	}
	return values, nil
}

// supplyPurposes fetches the initial purpose flag for a set of supplies
// of one kind.
func (m *Model) supplyPurposes(supplyTypeID int, supplies []int) ([]int, error) {
	id := int32(supplyTypeID)
	n := int32(len(supplies))
	list := fortran.Int32s(supplies)
	flags := make([]int32, len(supplies))
	err := m.call("IW_Model_GetSupplyPurpose",
		unsafe.Pointer(&id),
		unsafe.Pointer(&n),
		fortran.Ptr(list),
		fortran.Ptr(flags),
	)
	if err != nil {
		return nil, err
	}
	return fortran.Ints(flags), nil
}

// DiversionPurposes returns the initial purpose flag of each given
// diversion: 10 serves agriculture, 1 serves urban demand, 11 serves
// both. Automatic supply adjustment can change the purpose during a
// run, so these are the user-specified starting values.
func (m *Model) DiversionPurposes(diversions []int) ([]int, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.supplyPurposes(ids.Diversion, diversions)
}

// WellPumpingPurposes returns the initial purpose flag of each given
// well. The flag encoding matches DiversionPurposes.
func (m *Model) WellPumpingPurposes(wells []int) ([]int, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.supplyPurposes(ids.Well, wells)
}

// AgSupplyRequirementAtElements returns the current-timestep
// agricultural water supply requirement at the given elements.
func (m *Model) AgSupplyRequirementAtElements(elements []int, factor float64) ([]float64, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyRequirement_Ag", ids.Element, elements, factor)
}

// AgSupplyRequirementAtSubregions returns the current-timestep
// agricultural water supply requirement at the given subregions.
func (m *Model) AgSupplyRequirementAtSubregions(subregions []int, factor float64) ([]float64, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyRequirement_Ag", ids.Subregion, subregions, factor)
}

// UrbanSupplyRequirementAtElements returns the current-timestep urban
// water supply requirement at the given elements.
func (m *Model) UrbanSupplyRequirementAtElements(elements []int, factor float64) ([]float64, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyRequirement_Urb", ids.Element, elements, factor)
}

// UrbanSupplyRequirementAtSubregions returns the current-timestep urban
// water supply requirement at the given subregions.
func (m *Model) UrbanSupplyRequirementAtSubregions(subregions []int, factor float64) ([]float64, error) {
	ids, err := m.s.LocationTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyRequirement_Urb", ids.Subregion, subregions, factor)
}

// AgDiversionShortageAtOrigin returns the current-timestep agricultural
// shortage of the given diversions, measured at the supply origin so
// conveyance losses count toward the shortage.
func (m *Model) AgDiversionShortageAtOrigin(diversions []int, factor float64) ([]float64, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyShortAtOrigin_Ag", ids.Diversion, diversions, factor)
}

// AgWellShortageAtOrigin returns the current-timestep agricultural
// shortage of the given wells.
func (m *Model) AgWellShortageAtOrigin(wells []int, factor float64) ([]float64, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyShortAtOrigin_Ag", ids.Well, wells, factor)
}

// AgElementPumpShortageAtOrigin returns the current-timestep
// agricultural shortage of the given element pumps.
func (m *Model) AgElementPumpShortageAtOrigin(elementPumps []int, factor float64) ([]float64, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyShortAtOrigin_Ag", ids.ElementPump, elementPumps, factor)
}

// UrbanDiversionShortageAtOrigin returns the current-timestep urban
// shortage of the given diversions.
func (m *Model) UrbanDiversionShortageAtOrigin(diversions []int, factor float64) ([]float64, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyShortAtOrigin_Urb", ids.Diversion, diversions, factor)
}

// UrbanWellShortageAtOrigin returns the current-timestep urban shortage
// of the given wells.
func (m *Model) UrbanWellShortageAtOrigin(wells []int, factor float64) ([]float64, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyShortAtOrigin_Urb", ids.Well, wells, factor)
}

// UrbanElementPumpShortageAtOrigin returns the current-timestep urban
// shortage of the given element pumps.
func (m *Model) UrbanElementPumpShortageAtOrigin(elementPumps []int, factor float64) ([]float64, error) {
	ids, err := m.s.SupplyTypeIDs()
	if err != nil {
		return nil, err
	}
	return m.locationScaled("IW_Model_GetSupplyShortAtOrigin_Urb", ids.ElementPump, elementPumps, factor)
}

// SubregionAgPumpingAverageDepthToWater returns each subregion's depth
// to groundwater, weight-averaged by agricultural pumping over the run
// so far.
func (m *Model) SubregionAgPumpingAverageDepthToWater() ([]float64, error) {
	n, err := m.NumSubregions()
	if err != nil {
		return nil, err
	}

	depths := make([]float64, n)
	n32 := int32(n)
	err = m.call("IW_Model_GetSubregionAgPumpingAverageDepthToGW",
		unsafe.Pointer(&n32),
		fortran.Ptr(depths),
	)
	if err != nil {
		return nil, err
	}
	return depths, nil
}

// ZoneAgPumpingAverageDepthToWater returns the pumping-weighted average
// depth to groundwater over custom zones. Each element carries the zone
// it belongs to; elements and zones must pair up one to one. The result
// holds one value per distinct zone.
func (m *Model) ZoneAgPumpingAverageDepthToWater(elements, zones []int) ([]float64, error) {
	if len(elements) != len(zones) {
		return nil, &errors.DimensionError{
			What: "zone assignments",
			Want: len(elements),
			Got:  len(zones),
		}
	}

	nElements := int32(len(elements))
	elementList := fortran.Int32s(elements)
	zoneList := fortran.Int32s(zones)
	nZones := int32(uniqueCount(zones))
	depths := make([]float64, nZones)
	err := m.call("IW_Model_GetZoneAgPumpingAverageDepthToGW",
		unsafe.Pointer(&nElements),
		fortran.Ptr(elementList),
		fortran.Ptr(zoneList),
		unsafe.Pointer(&nZones),
		fortran.Ptr(depths),
	)
	if err != nil {
		return nil, err
	}
	return depths, nil
}

func uniqueCount(vals []int) int {
	seen := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}
