package feed

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/gocarina/gocsv"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseTrips decodes a trip CSV. Columns are matched by header name; unknown
// columns are ignored and short rows are tolerated.
func ParseTrips(r io.Reader) ([]models.TripRecord, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records := make([]models.TripRecord, 0)
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, fmt.Errorf("parse trips csv: %w", err)
	}
	return records, nil
}

// FetchTrips opens source and parses it as a trip CSV.
func FetchTrips(ctx context.Context, client *http.Client, source string) ([]models.TripRecord, error) {
	rc, err := Open(ctx, client, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ParseTrips(rc)
}
