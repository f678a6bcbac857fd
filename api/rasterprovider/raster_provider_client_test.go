package rasterprovider

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"npp-server/api"
	"npp-server/models"
)

func testRegion() models.Region {
	return models.Region{
		RegionID:   "roi-1",
		RegionName: "Test ROI",
		BoundingBox: models.BoundingBox{
			LatMin: -8.2, LatMax: -8.0,
			LngMin: -35.1, LngMax: -34.9,
		},
	}
}

func TestListImageDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// method + path
		if r.Method != "GET" {
			t.Errorf("expected GET; got %s", r.Method)
		}
		if r.URL.Path != "/collections/MODIS%2F006%2FMOD13Q1/dates" && r.URL.Path != "/collections/MODIS/006/MOD13Q1/dates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		// filter range forwarded as query params
		if got := r.URL.Query().Get("start"); got != "2018-01-01" {
			t.Errorf("start = %q; want 2018-01-01", got)
		}
		if got := r.URL.Query().Get("end"); got != "2018-02-19" {
			t.Errorf("end = %q; want 2018-02-19", got)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{
			"dates": {"2018-01-01", "2018-01-17", "2018-02-02", "2018-02-18"},
		})
	}))
	defer srv.Close()

	client := NewRasterProviderClient(api.NewHTTPClient(srv.URL))
	dates := models.NewDateRange(
		time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 2, 19, 0, 0, 0, 0, time.UTC),
	)
	collection := client.QueryCollection("MODIS/006/MOD13Q1", testRegion(), dates)

	got, err := client.ListImageDates(collection)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 dates, got %d", len(got))
	}
	if got[0].Format(models.DateLayout) != "2018-01-01" {
		t.Errorf("first date = %s; want 2018-01-01", got[0].Format(models.DateLayout))
	}
}

func TestValidPixelCount_PostsExpression(t *testing.T) {
	var received map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST; got %s", r.Method)
		}
		if r.URL.Path != "/expression/pixel-count" {
			t.Errorf("expected path /expression/pixel-count; got %s", r.URL.Path)
		}

		// must carry the api key
		if got := r.Header.Get("X-Api-Key"); got != "secret" {
			t.Errorf("X-Api-Key = %q; want secret", got)
		}

		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &received)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int64{"count": 12345})
	}))
	defer srv.Close()

	client := NewRasterProviderClient(api.NewHTTPClient(srv.URL))
	client.SetAPIKey("secret")

	image := client.Asset("mask/landcover").MultiplyConst(2)
	got, err := client.ValidPixelCount(image, testRegion(), 500)
	if err != nil {
		t.Fatal(err)
	}
	if got != 12345 {
		t.Errorf("count = %d; want 12345", got)
	}

	// the serialized expression must describe the whole tree
	expr, ok := received["expression"].(map[string]interface{})
	if !ok {
		t.Fatalf("expression missing from request body: %v", received)
	}
	if expr["op"] != models.OpMultiplyConst {
		t.Errorf("expression op = %v; want %s", expr["op"], models.OpMultiplyConst)
	}
	if received["scale"] != 500.0 {
		t.Errorf("scale = %v; want 500", received["scale"])
	}
}

func TestExport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/expression/export" {
			t.Errorf("expected path /expression/export; got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ExportTask{
			TaskID: "task-7",
			Name:   "npp_2018-01-01",
			Status: "RUNNING",
		})
	}))
	defer srv.Close()

	client := NewRasterProviderClient(api.NewHTTPClient(srv.URL))
	task, err := client.Export(client.Asset("some/image"), "npp_2018-01-01", testRegion())
	if err != nil {
		t.Fatal(err)
	}
	if task.TaskID != "task-7" || task.Status != "RUNNING" {
		t.Errorf("unexpected task: %+v", task)
	}
}
