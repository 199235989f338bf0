package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

// FetchStations retrieves the station information payload from a URL or a
// local file.
func FetchStations(ctx context.Context, client *http.Client, source string) (models.StationFeed, error) {
	rc, err := Open(ctx, client, source)
	if err != nil {
		return models.StationFeed{}, err
	}
	defer rc.Close()

	var payload models.StationFeed
	if err := json.NewDecoder(rc).Decode(&payload); err != nil {
		return models.StationFeed{}, fmt.Errorf("decode payload: %w", err)
	}

	return payload, nil
}
