// Package export renders wells, well sets, plates and stacks as JSON, XML
// or CSV. Renderings are built only from the read-only accessors of the
// domain types.
package export

import (
	"encoding/xml"
	"fmt"

	"microplate/pkg/domain"
)

// WellRecord is the serialized form of a well.
type WellRecord struct {
	XMLName xml.Name  `json:"-" xml:"well"`
	Key     string    `json:"key" xml:"key,attr"`
	Row     int       `json:"row" xml:"row,attr"`
	Column  int       `json:"column" xml:"column,attr"`
	Values  []float64 `json:"values" xml:"value"`
}

// WellSetRecord is the serialized form of a well set.
type WellSetRecord struct {
	XMLName xml.Name     `json:"-" xml:"wellset"`
	Name    string       `json:"name" xml:"name,attr"`
	Wells   []WellRecord `json:"wells" xml:"well"`
}

// GroupRecord is the serialized form of a well group.
type GroupRecord struct {
	Name  string   `json:"name" xml:"name,attr"`
	Wells []string `json:"wells" xml:"well"`
}

// PlateRecord is the serialized form of a plate.
type PlateRecord struct {
	XMLName xml.Name      `json:"-" xml:"plate"`
	Name    string        `json:"name" xml:"name,attr"`
	Rows    int           `json:"rows" xml:"rows,attr"`
	Columns int           `json:"columns" xml:"columns,attr"`
	Type    string        `json:"type,omitempty" xml:"type,attr,omitempty"`
	Groups  []GroupRecord `json:"groups,omitempty" xml:"group"`
	Wells   []WellRecord  `json:"wells" xml:"well"`
}

// StackRecord is the serialized form of a stack.
type StackRecord struct {
	XMLName xml.Name      `json:"-" xml:"stack"`
	Name    string        `json:"name" xml:"name,attr"`
	Plates  []PlateRecord `json:"plates" xml:"plate"`
}

// FromWell builds the record of w.
func FromWell(w *domain.Well) WellRecord {
	values := w.Data()
	if values == nil {
		values = []float64{}
	}
	return WellRecord{Key: w.Key(), Row: w.Row(), Column: w.Column(), Values: values}
}

func fromWells(wells []*domain.Well) []WellRecord {
	out := make([]WellRecord, len(wells))
	for i, w := range wells {
		out[i] = FromWell(w)
	}
	return out
}

// FromWellSet builds the record of s.
func FromWellSet(s *domain.WellSet) WellSetRecord {
	return WellSetRecord{Name: s.Name(), Wells: fromWells(s.Wells())}
}

// FromPlate builds the record of p.
func FromPlate(p *domain.Plate) PlateRecord {
	rec := PlateRecord{
		Name:    p.Name(),
		Rows:    p.Rows(),
		Columns: p.Columns(),
		Type:    p.Type(),
		Wells:   fromWells(p.Wells()),
	}
	for _, g := range p.Groups() {
		rec.Groups = append(rec.Groups, GroupRecord{Name: g.Name(), Wells: g.Keys()})
	}
	return rec
}

// FromStack builds the record of s.
func FromStack(s *domain.Stack) StackRecord {
	plates := s.Plates()
	rec := StackRecord{Name: s.Name(), Plates: make([]PlateRecord, len(plates))}
	for i, p := range plates {
		rec.Plates[i] = FromPlate(p)
	}
	return rec
}

// FromPlates builds a stack record from an operation result.
func FromPlates(name string, plates []*domain.Plate) StackRecord {
	rec := StackRecord{Name: name, Plates: make([]PlateRecord, len(plates))}
	for i, p := range plates {
		rec.Plates[i] = FromPlate(p)
	}
	return rec
}

// Record converts any supported value to its record. Records pass through
// unchanged.
func Record(v any) (any, error) {
	switch x := v.(type) {
	case *domain.Well:
		if x != nil {
			return FromWell(x), nil
		}
	case *domain.WellSet:
		if x != nil {
			return FromWellSet(x), nil
		}
	case *domain.Plate:
		if x != nil {
			return FromPlate(x), nil
		}
	case *domain.Stack:
		if x != nil {
			return FromStack(x), nil
		}
	case []*domain.Plate:
		return FromPlates("", x), nil
	case WellRecord, WellSetRecord, PlateRecord, StackRecord:
		return x, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}
