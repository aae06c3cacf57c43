package engine

import "unsafe"

// The engine enumerates its feature, flow-destination, land-use and
// output kinds through opaque identifier numbers that can change
// between engine builds. The getters below fetch them once per session
// and cache the result.

// LocationTypeIDs identify the feature kinds that hydrographs, budgets
// and zone budgets attach to.
type LocationTypeIDs struct {
	Node             int
	Element          int
	Subregion        int
	Zone             int
	Lake             int
	StreamNode       int
	StreamReach      int
	TileDrain        int
	SmallWatershed   int
	GWHeadObs        int
	StreamHydObs     int
	SubsidenceObs    int
	StreamNodeBudget int
}

// FlowDestinationTypeIDs identify where a diversion or bypass delivers
// its water.
type FlowDestinationTypeIDs struct {
	Outside    int
	Element    int
	ElementSet int
	GWElement  int
	StreamNode int
	Lake       int
	Subregion  int
}

// SupplyTypeIDs identify the water supply kinds the engine adjusts.
type SupplyTypeIDs struct {
	Diversion   int
	Well        int
	ElementPump int
}

// ZoneExtentIDs identify whether zones span all layers or are defined
// per layer.
type ZoneExtentIDs struct {
	Horizontal int
	Vertical   int
}

// LandUseTypeIDs identify the land-use categories tracked by the root
// zone component.
type LandUseTypeIDs struct {
	GenAg          int
	Urban          int
	NonPondedAg    int
	Rice           int
	Refuge         int
	NativeRiparian int
}

// DataUnitTypeIDs identify the engine's unit dimensions.
type DataUnitTypeIDs struct {
	Length int
	Area   int
	Volume int
}

// BudgetTypeIDs identify the budget file kinds a model can produce.
type BudgetTypeIDs struct {
	GW                           int
	RootZone                     int
	LandAndWaterUse              int
	NonPondedCropRootZone        int
	NonPondedCropLandAndWaterUse int
	PondedCropRootZone           int
	PondedCropLandAndWaterUse    int
	UnsaturatedZone              int
	StreamNode                   int
	StreamReach                  int
	DiversionDetail              int
	SmallWatershed               int
	Lake                         int
}

// ZBudgetTypeIDs identify the zone budget file kinds a model can
// produce.
type ZBudgetTypeIDs struct {
	GW              int
	RootZone        int
	LandAndWaterUse int
	UnsaturatedZone int
}

type idCache struct {
	location     *LocationTypeIDs
	flowDest     *FlowDestinationTypeIDs
	supply       *SupplyTypeIDs
	zoneExtent   *ZoneExtentIDs
	landUse      *LandUseTypeIDs
	dataUnit     *DataUnitTypeIDs
	budgetTypes  *BudgetTypeIDs
	zbudgetTypes *ZBudgetTypeIDs
}

// pointers builds the by-reference argument list for a procedure that
// fills consecutive int32 outputs.
func pointers(vals []int32) []unsafe.Pointer {
	out := make([]unsafe.Pointer, len(vals))
	for i := range vals {
		out[i] = unsafe.Pointer(&vals[i])
	}
	return out
}

// LocationTypeIDs fetches the engine's location type identifiers.
func (s *Session) LocationTypeIDs() (LocationTypeIDs, error) {
	if s.ids.location != nil {
		return *s.ids.location, nil
	}

	var v [13]int32
	if err := s.Call("IW_GetLocationTypeIDs", pointers(v[:])...); err != nil {
		return LocationTypeIDs{}, err
	}

	ids := LocationTypeIDs{
		Node:             int(v[0]),
		Element:          int(v[1]),
		Subregion:        int(v[2]),
		Zone:             int(v[3]),
		Lake:             int(v[4]),
		StreamNode:       int(v[5]),
		StreamReach:      int(v[6]),
		TileDrain:        int(v[7]),
		SmallWatershed:   int(v[8]),
		GWHeadObs:        int(v[9]),
		StreamHydObs:     int(v[10]),
		SubsidenceObs:    int(v[11]),
		StreamNodeBudget: int(v[12]),
	}
	s.ids.location = &ids
	return ids, nil
}

// FlowDestinationTypeIDs fetches the engine's flow destination type
// identifiers.
func (s *Session) FlowDestinationTypeIDs() (FlowDestinationTypeIDs, error) {
	if s.ids.flowDest != nil {
		return *s.ids.flowDest, nil
	}

	var v [7]int32
	if err := s.Call("IW_GetFlowDestTypeIDs", pointers(v[:])...); err != nil {
		return FlowDestinationTypeIDs{}, err
	}

	ids := FlowDestinationTypeIDs{
		Outside:    int(v[0]),
		Element:    int(v[1]),
		ElementSet: int(v[2]),
		GWElement:  int(v[3]),
		StreamNode: int(v[4]),
		Lake:       int(v[5]),
		Subregion:  int(v[6]),
	}
	s.ids.flowDest = &ids
	return ids, nil
}

// SupplyTypeIDs fetches the engine's supply type identifiers. The
// engine exports these one at a time.
func (s *Session) SupplyTypeIDs() (SupplyTypeIDs, error) {
	if s.ids.supply != nil {
		return *s.ids.supply, nil
	}

	diversion, err := s.Int("IW_GetSupplyTypeID_Diversion")
	if err != nil {
		return SupplyTypeIDs{}, err
	}
	well, err := s.Int("IW_GetSupplyTypeID_Well")
	if err != nil {
		return SupplyTypeIDs{}, err
	}
	elementPump, err := s.Int("IW_GetSupplyTypeID_ElemPump")
	if err != nil {
		return SupplyTypeIDs{}, err
	}

	ids := SupplyTypeIDs{Diversion: diversion, Well: well, ElementPump: elementPump}
	s.ids.supply = &ids
	return ids, nil
}

// ZoneExtentIDs fetches the engine's zone extent identifiers.
func (s *Session) ZoneExtentIDs() (ZoneExtentIDs, error) {
	if s.ids.zoneExtent != nil {
		return *s.ids.zoneExtent, nil
	}

	var v [2]int32
	if err := s.Call("IW_GetZoneExtentIDs", pointers(v[:])...); err != nil {
		return ZoneExtentIDs{}, err
	}

	ids := ZoneExtentIDs{Horizontal: int(v[0]), Vertical: int(v[1])}
	s.ids.zoneExtent = &ids
	return ids, nil
}

// LandUseTypeIDs fetches the engine's land-use type identifiers.
func (s *Session) LandUseTypeIDs() (LandUseTypeIDs, error) {
	if s.ids.landUse != nil {
		return *s.ids.landUse, nil
	}

	var v [6]int32
	if err := s.Call("IW_GetLandUseTypeIDs", pointers(v[:])...); err != nil {
		return LandUseTypeIDs{}, err
	}

	ids := LandUseTypeIDs{
		GenAg:          int(v[0]),
		Urban:          int(v[1]),
		NonPondedAg:    int(v[2]),
		Rice:           int(v[3]),
		Refuge:         int(v[4]),
		NativeRiparian: int(v[5]),
	}
	s.ids.landUse = &ids
	return ids, nil
}

// DataUnitTypeIDs fetches the engine's unit dimension identifiers.
func (s *Session) DataUnitTypeIDs() (DataUnitTypeIDs, error) {
	if s.ids.dataUnit != nil {
		return *s.ids.dataUnit, nil
	}

	var v [3]int32
	if err := s.Call("IW_GetDataUnitTypeIDs", pointers(v[:])...); err != nil {
		return DataUnitTypeIDs{}, err
	}

	ids := DataUnitTypeIDs{Length: int(v[0]), Area: int(v[1]), Volume: int(v[2])}
	s.ids.dataUnit = &ids
	return ids, nil
}

// BudgetTypeIDs fetches the engine's budget file type identifiers.
func (s *Session) BudgetTypeIDs() (BudgetTypeIDs, error) {
	if s.ids.budgetTypes != nil {
		return *s.ids.budgetTypes, nil
	}

	var v [13]int32
	if err := s.Call("IW_GetBudgetTypeIDs", pointers(v[:])...); err != nil {
		return BudgetTypeIDs{}, err
	}

	ids := BudgetTypeIDs{
		GW:                           int(v[0]),
		RootZone:                     int(v[1]),
		LandAndWaterUse:              int(v[2]),
		NonPondedCropRootZone:        int(v[3]),
		NonPondedCropLandAndWaterUse: int(v[4]),
		PondedCropRootZone:           int(v[5]),
		PondedCropLandAndWaterUse:    int(v[6]),
		UnsaturatedZone:              int(v[7]),
		StreamNode:                   int(v[8]),
		StreamReach:                  int(v[9]),
		DiversionDetail:              int(v[10]),
		SmallWatershed:               int(v[11]),
		Lake:                         int(v[12]),
	}
	s.ids.budgetTypes = &ids
	return ids, nil
}

// ZBudgetTypeIDs fetches the engine's zone budget file type
// identifiers.
func (s *Session) ZBudgetTypeIDs() (ZBudgetTypeIDs, error) {
	if s.ids.zbudgetTypes != nil {
		return *s.ids.zbudgetTypes, nil
	}

	var v [4]int32
	if err := s.Call("IW_GetZBudgetTypeIDs", pointers(v[:])...); err != nil {
		return ZBudgetTypeIDs{}, err
	}

	ids := ZBudgetTypeIDs{
		GW:              int(v[0]),
		RootZone:        int(v[1]),
		LandAndWaterUse: int(v[2]),
		UnsaturatedZone: int(v[3]),
	}
	s.ids.zbudgetTypes = &ids
	return ids, nil
}
