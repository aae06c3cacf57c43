package zbudget

import (
	"sort"
	"time"
	"unsafe"

	"github.com/SGMOModeling/gowfm"
	"github.com/SGMOModeling/gowfm/domain/entities"
	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/internal/fortran"
)

// timeColumn is the column id of the leading Time column. Every read
// carries it whether the caller selected it or not.
const timeColumn = 1

// ColumnHeadersGeneral returns the column headers that apply to any
// zone. Flows between neighboring zones are lumped into single
// inflow/outflow columns.
func (z *ZBudget) ColumnHeadersGeneral(areaUnit, volumeUnit string) ([]string, error) {
	maxN := int32(maxColumns)
	areaBuf := fortran.CString(areaUnit)
	volumeBuf := fortran.CString(volumeUnit)
	unitLen := int32(max(len(areaBuf), len(volumeBuf)))
	buf := make([]byte, maxColumns*nameLen)
	bufLen := int32(len(buf))
	var n int32
	starts := make([]int32, maxColumns)

	err := z.call("IW_ZBudget_GetColumnHeaders_General",
		unsafe.Pointer(&maxN),
		unsafe.Pointer(&areaBuf[0]),
		unsafe.Pointer(&volumeBuf[0]),
		unsafe.Pointer(&unitLen),
		unsafe.Pointer(&bufLen),
		fortran.Ptr(buf),
		unsafe.Pointer(&n),
		fortran.Ptr(starts),
	)
	if err != nil {
		return nil, err
	}
	return fortran.SplitByStarts(fortran.GoString(buf), starts[:n]), nil
}

// ColumnHeadersForZone returns the diversified column headers of one
// zone: flows between neighboring zones appear as one column per
// neighbor. columns selects general columns by id; nil selects all of
// them. The returned ids are the diversified column ids valid in value
// reads for this zone, parallel to the headers.
func (z *ZBudget) ColumnHeadersForZone(zoneID int, columns []int, areaUnit, volumeUnit string) ([]string, []int, error) {
	if err := z.validZone(zoneID); err != nil {
		return nil, nil, err
	}
	general, err := z.ColumnHeadersGeneral(areaUnit, volumeUnit)
	if err != nil {
		return nil, nil, err
	}

	if columns == nil {
		columns = make([]int, len(general))
		for i := range columns {
			columns[i] = i + 1
		}
	} else {
		for _, c := range columns {
			if c < 1 || c > len(general) {
				return nil, nil, &errors.NotFoundError{ID: c, Kind: "zone budget column"}
			}
		}
	}

	id := int32(zoneID)
	nCols := int32(len(columns))
	cols32 := fortran.Int32s(columns)
	maxN := int32(maxColumns)
	areaBuf := fortran.CString(areaUnit)
	volumeBuf := fortran.CString(volumeUnit)
	unitLen := int32(max(len(areaBuf), len(volumeBuf)))
	buf := make([]byte, maxColumns*nameLen)
	bufLen := int32(len(buf))
	var n int32
	starts := make([]int32, maxColumns)
	diversified := make([]int32, maxColumns)

	err = z.call("IW_ZBudget_GetColumnHeaders_ForAZone",
		unsafe.Pointer(&id),
		unsafe.Pointer(&nCols),
		fortran.Ptr(cols32),
		unsafe.Pointer(&maxN),
		unsafe.Pointer(&areaBuf[0]),
		unsafe.Pointer(&volumeBuf[0]),
		unsafe.Pointer(&unitLen),
		unsafe.Pointer(&bufLen),
		fortran.Ptr(buf),
		unsafe.Pointer(&n),
		fortran.Ptr(starts),
		fortran.Ptr(diversified),
	)
	if err != nil {
		return nil, nil, err
	}

	headers := fortran.SplitByStarts(fortran.GoString(buf), starts[:n])

	// The engine zero-pads the diversified id array to its capacity.
	ids := diversified
	for len(ids) > 0 && ids[len(ids)-1] == 0 {
		ids = ids[:len(ids)-1]
	}
	return headers, fortran.Ints(ids), nil
}

// zoneSelection normalizes one zone's column selection: ids are sorted,
// validated against the zone's diversified ids and forced to carry the
// Time column first.
func zoneSelection(columns, valid []int) ([]int, error) {
	for _, c := range columns {
		ok := false
		for _, v := range valid {
			if v == c {
				ok = true
				break
			}
		}
		if !ok {
			return nil, &errors.NotFoundError{ID: c, Kind: "zone budget column"}
		}
	}

	out := make([]int, 0, len(columns)+1)
	for _, c := range columns {
		if c != timeColumn {
			out = append(out, c)
		}
	}
	sort.Ints(out)
	return append([]int{timeColumn}, out...), nil
}

// ValuesForSomeZonesForAnInterval returns the zone flows of one output
// interval, keyed by zone name. zoneIDs selects zones, nil meaning
// every zone; columns holds one selection of diversified column ids
// per selected zone, nil meaning every column of every zone. date
// picks the interval, empty meaning the first; interval aggregates,
// empty meaning the file's own interval.
func (z *ZBudget) ValuesForSomeZonesForAnInterval(zoneIDs []int, columns [][]int, date, interval string, areaFactor, volumeFactor float64) (map[string]entities.Table, error) {
	zones, err := z.Zones()
	if err != nil {
		return nil, err
	}

	if zoneIDs == nil {
		zoneIDs = zones.IDs
	}
	if columns != nil && len(columns) != len(zoneIDs) {
		return nil, &errors.DimensionError{What: "per-zone column selections", Want: len(zoneIDs), Got: len(columns)}
	}

	// Resolve every zone's selection against its own diversified
	// header set; zones differ in neighbor count.
	headersByZone := make([][]string, len(zoneIDs))
	selections := make([][]int, len(zoneIDs))
	width := 0
	for i, id := range zoneIDs {
		headers, valid, err := z.ColumnHeadersForZone(id, nil, DefaultAreaUnit, DefaultVolumeUnit)
		if err != nil {
			return nil, err
		}
		headersByZone[i] = headers

		selection := valid
		if columns != nil {
			selection, err = zoneSelection(columns[i], valid)
			if err != nil {
				return nil, err
			}
		}
		selections[i] = selection
		if len(selection) > width {
			width = len(selection)
		}
	}

	// The engine takes a rectangular selection matrix, zero-padded.
	flatCols := make([]int32, len(zoneIDs)*width)
	for i, selection := range selections {
		for j, c := range selection {
			flatCols[i*width+j] = int32(c)
		}
	}

	specs, err := z.TimeSpecs()
	if err != nil {
		return nil, err
	}
	if date == "" {
		first, _ := specs.Span()
		date = first
	} else {
		if err := gowfm.ValidateTimeStamp(date); err != nil {
			return nil, err
		}
		if !specs.Contains(date) {
			return nil, &errors.NotFoundError{ID: date, Kind: "zone budget time step"}
		}
	}
	interval, err = z.outputInterval(interval, specs.Interval)
	if err != nil {
		return nil, err
	}

	nZones := int32(len(zoneIDs))
	ids32 := fortran.Int32s(zoneIDs)
	width32 := int32(width)
	dateBuf := fortran.CString(date)
	lenDate := int32(len(dateBuf))
	intervalBuf := fortran.CString(interval)
	lenInterval := int32(len(intervalBuf))
	values := make([]float64, len(zoneIDs)*width)

	err = z.call("IW_ZBudget_GetValues_ForSomeZones_ForAnInterval",
		unsafe.Pointer(&nZones),
		fortran.Ptr(ids32),
		unsafe.Pointer(&width32),
		fortran.Ptr(flatCols),
		unsafe.Pointer(&dateBuf[0]),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&areaFactor),
		unsafe.Pointer(&volumeFactor),
		fortran.Ptr(values),
	)
	if err != nil {
		return nil, err
	}

	out := make(map[string]entities.Table, len(zoneIDs))
	for i, id := range zoneIDs {
		selection := selections[i]
		row := values[i*width : i*width+len(selection)]

		// Selection always leads with the Time column.
		names := make([]string, len(selection)-1)
		for j, c := range selection[1:] {
			names[j] = headersByZone[i][c-1]
		}
		data := make([]float64, len(row)-1)
		copy(data, row[1:])

		out[zones.NameOf(id)] = entities.Table{
			Columns: names,
			Times:   []time.Time{gowfm.FromSerial(row[0])},
			Data:    [][]float64{data},
		}
	}
	return out, nil
}

// ValuesForAZone returns one zone's budget table over the window.
// columns selects diversified column ids, nil meaning all of them; the
// Time column is always read. interval aggregates, empty meaning the
// file's own interval.
func (z *ZBudget) ValuesForAZone(zoneID int, columns []int, window gowfm.TimeWindow, interval string, areaFactor, volumeFactor float64) (entities.Table, error) {
	headers, valid, err := z.ColumnHeadersForZone(zoneID, nil, DefaultAreaUnit, DefaultVolumeUnit)
	if err != nil {
		return entities.Table{}, err
	}
	if columns == nil {
		columns = valid
	}
	selection, err := zoneSelection(columns, valid)
	if err != nil {
		return entities.Table{}, err
	}

	begin, end, specs, err := z.resolveWindow(window)
	if err != nil {
		return entities.Table{}, err
	}
	interval, err = z.outputInterval(interval, specs.Interval)
	if err != nil {
		return entities.Table{}, err
	}
	n, err := z.s.NIntervals(begin, end, interval, true)
	if err != nil {
		return entities.Table{}, err
	}

	id := int32(zoneID)
	nCols := int32(len(selection))
	cols32 := fortran.Int32s(selection)
	beginBuf := fortran.CString(begin)
	endBuf := fortran.CString(end)
	lenDate := int32(len(beginBuf))
	intervalBuf := fortran.CString(interval)
	lenInterval := int32(len(intervalBuf))
	nIn := int32(n)
	width := len(selection)
	flat := make([]float64, n*width)
	var nOut int32

	err = z.call("IW_ZBudget_GetValues_ForAZone",
		unsafe.Pointer(&id),
		unsafe.Pointer(&nCols),
		fortran.Ptr(cols32),
		unsafe.Pointer(&beginBuf[0]),
		unsafe.Pointer(&endBuf[0]),
		unsafe.Pointer(&lenDate),
		unsafe.Pointer(&intervalBuf[0]),
		unsafe.Pointer(&lenInterval),
		unsafe.Pointer(&areaFactor),
		unsafe.Pointer(&volumeFactor),
		unsafe.Pointer(&nIn),
		fortran.Ptr(flat),
		unsafe.Pointer(&nOut),
	)
	if err != nil {
		return entities.Table{}, err
	}

	rows := n
	if nOut > 0 && int(nOut) < n {
		rows = int(nOut)
	}
	names := make([]string, len(selection)-1)
	for j, c := range selection[1:] {
		names[j] = headers[c-1]
	}
	times := make([]time.Time, rows)
	data := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := flat[i*width : (i+1)*width]
		times[i] = gowfm.FromSerial(row[0])
		data[i] = row[1:]
	}
	return entities.Table{Columns: names, Times: times, Data: data}, nil
}
