package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatCSV  Format = "csv"
)

var (
	// ErrUnsupportedFormat is returned for an unknown Format.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrUnsupportedValue is returned for a value that has no record form.
	ErrUnsupportedValue = errors.New("unsupported export value")
)

// CSVHeader is the header row of every CSV rendering. Each data row holds one
// value of one well; wells without values produce a row with empty index and
// value cells.
var CSVHeader = []string{"container", "well", "row", "column", "index", "value"}

// Artifact is a rendered payload.
type Artifact struct {
	Format      Format
	ContentType string
	SizeBytes   int64
	Wells       int
	Payload     []byte
}

// Render encodes v, which is a domain container, a []*domain.Plate operation
// result or one of the record types.
func Render(format Format, v any) (Artifact, error) {
	rec, err := Record(v)
	if err != nil {
		return Artifact{}, err
	}
	var payload []byte
	var contentType string
	switch format {
	case FormatJSON:
		payload, err = json.Marshal(rec)
		if err != nil {
			return Artifact{}, fmt.Errorf("marshal json: %w", err)
		}
		contentType = "application/json"
	case FormatXML:
		body, err := xml.Marshal(rec)
		if err != nil {
			return Artifact{}, fmt.Errorf("marshal xml: %w", err)
		}
		payload = append([]byte(xml.Header), body...)
		contentType = "application/xml"
	case FormatCSV:
		payload, err = renderCSV(rec)
		if err != nil {
			return Artifact{}, fmt.Errorf("write csv: %w", err)
		}
		contentType = "text/csv"
	default:
		return Artifact{}, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	return Artifact{
		Format:      format,
		ContentType: contentType,
		SizeBytes:   int64(len(payload)),
		Wells:       countWells(rec),
		Payload:     payload,
	}, nil
}

// Write renders v and copies the payload to w.
func Write(w io.Writer, format Format, v any) error {
	art, err := Render(format, v)
	if err != nil {
		return err
	}
	_, err = w.Write(art.Payload)
	return err
}

type csvRow struct {
	container string
	well      WellRecord
}

func flatten(rec any) []csvRow {
	var out []csvRow
	add := func(container string, wells []WellRecord) {
		for _, w := range wells {
			out = append(out, csvRow{container: container, well: w})
		}
	}
	switch r := rec.(type) {
	case WellRecord:
		add("", []WellRecord{r})
	case WellSetRecord:
		add(r.Name, r.Wells)
	case PlateRecord:
		add(r.Name, r.Wells)
	case StackRecord:
		for _, p := range r.Plates {
			add(p.Name, p.Wells)
		}
	}
	return out
}

func countWells(rec any) int { return len(flatten(rec)) }

func renderCSV(rec any) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, row := range flatten(rec) {
		w := row.well
		base := []string{row.container, w.Key, strconv.Itoa(w.Row), strconv.Itoa(w.Column)}
		if len(w.Values) == 0 {
			if err := writer.Write(append(base, "", "")); err != nil {
				return nil, err
			}
			continue
		}
		for i, v := range w.Values {
			record := append(base[:4:4], strconv.Itoa(i), strconv.FormatFloat(v, 'g', -1, 64))
			if err := writer.Write(record); err != nil {
				return nil, err
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
