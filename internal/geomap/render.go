package geomap

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"roadsense/internal/geocode"
	"roadsense/internal/types"
)

// sentimentColor mirrors the legend below; unrecognized sentiments fall
// back to blue.
var sentimentColor = map[string]string{
	types.SentimentAngry:      "red",
	types.SentimentFrustrated: "orange",
	types.SentimentNeutral:    "gray",
	types.SentimentHelpful:    "green",
	types.SentimentOther:      "blue",
	types.SentimentError:      "purple",
}

type marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

type page struct {
	CenterLat float64
	CenterLng float64
	Markers   template.JS
}

// Render writes a self-contained Leaflet map of the enriched records whose
// locations geocoded. Popups carry the issue, sentiment and post title;
// markers cluster and are colored by sentiment.
func Render(path string, records []types.EnrichedRecord, coords map[string]*geocode.Coordinates, centerLat, centerLng float64) error {
	markers := make([]marker, 0, len(records))
	for _, r := range records {
		c, ok := coords[r.Location]
		if !ok || c == nil {
			continue
		}

		color, ok := sentimentColor[strings.ToLower(r.Sentiment)]
		if !ok {
			color = "blue"
		}
		popup := fmt.Sprintf("<b>%s</b><br><b>%s</b><br><i>%s</i>",
			titleCase(r.IssueType),
			titleCase(r.Sentiment),
			template.HTMLEscapeString(r.Title))

		markers = append(markers, marker{Lat: c.Lat, Lng: c.Lng, Color: color, Popup: popup})
	}

	data, err := json.Marshal(markers)
	if err != nil {
		return fmt.Errorf("marshal markers: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	return mapTemplate.Execute(f, page{
		CenterLat: centerLat,
		CenterLng: centerLng,
		Markers:   template.JS(data),
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Road Reports</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend {
    position: fixed; bottom: 50px; left: 50px; z-index: 9999;
    background: white; padding: 10px; border: 2px solid black;
  }
  .legend i { display: inline-block; width: 12px; height: 12px; border-radius: 50%; margin-right: 6px; }
</style>
</head>
<body>
<div id="map"></div>
<div class="legend">
  <b>Sentiment Legend</b><br>
  <i style="background:red"></i> Angry<br>
  <i style="background:orange"></i> Frustrated<br>
  <i style="background:gray"></i> Neutral<br>
  <i style="background:green"></i> Helpful<br>
</div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLng}}], 12);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

var cluster = L.markerClusterGroup();
var markers = {{.Markers}};
markers.forEach(function (m) {
  L.circleMarker([m.lat, m.lng], {
    radius: 9,
    color: m.color,
    fillColor: m.color,
    fillOpacity: 0.8
  }).bindPopup(m.popup).addTo(cluster);
});
cluster.addTo(map);
</script>
</body>
</html>
`))
