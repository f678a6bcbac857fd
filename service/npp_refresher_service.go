package services

import (
	"fmt"
	"log"
	"time"

	"npp-server/api/prodmodel"
	"npp-server/api/rasterprovider"
	"npp-server/config"
	"npp-server/dao/redis"
	"npp-server/models"
)

// defaultRegions is the constant list of regions of interest to
// process when none are configured.
var defaultRegions = []models.Region{
	{
		// Caatinga core
		RegionID:   "caatinga-core",
		RegionName: "Caatinga Core",
		BoundingBox: models.BoundingBox{
			LatMin: -9.6, LatMax: -7.8,
			LngMin: -40.9, LngMax: -38.6,
		},
	},
	{
		// Zona da Mata
		RegionID:   "zona-da-mata",
		RegionName: "Zona da Mata",
		BoundingBox: models.BoundingBox{
			LatMin: -8.9, LatMax: -7.6,
			LngMin: -35.8, LngMax: -34.8,
		},
	},
	{
		// Cerrado west
		RegionID:   "cerrado-west",
		RegionName: "Cerrado West",
		BoundingBox: models.BoundingBox{
			LatMin: -13.4, LatMax: -11.9,
			LngMin: -46.6, LngMax: -45.2,
		},
	},
}

// NppRefresherService periodically runs the full harmonization
// pipeline for every configured region and caches the outputs.
type NppRefresherService struct {
	nppDao   *redis.RedisNppDAO
	provider rasterprovider.RasterProvider
	model    prodmodel.ProductivityModel
	regions  []models.Region
}

// NewNppRefresherService constructs a new refresher with dependencies.
// A nil or empty region list falls back to the built-in defaults.
func NewNppRefresherService(
	nppDao *redis.RedisNppDAO,
	provider rasterprovider.RasterProvider,
	model prodmodel.ProductivityModel,
	regions []models.Region,
) *NppRefresherService {
	if len(regions) == 0 {
		regions = defaultRegions
	}
	return &NppRefresherService{
		nppDao:   nppDao,
		provider: provider,
		model:    model,
		regions:  regions,
	}
}

// StartPeriodicJob launches the background loop at the given interval.
func (nr *NppRefresherService) StartPeriodicJob(interval time.Duration) {
	go nr.startPeriodicJob(interval)
}

func (nr *NppRefresherService) startPeriodicJob(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		log.Println("[NppRefresherService] Running periodic NPP refresher job.")
		if err := nr.RefreshAllRegions(); err != nil {
			log.Printf("[NppRefresherService] RefreshAllRegions returned error: %v", err)
		} else {
			log.Println("[NppRefresherService] RefreshAllRegions completed successfully.")
		}
	}
}

// RefreshAllRegions runs the pipeline for every configured region.
// One region failing does not stop the others; the first error is
// reported after all regions were attempted.
func (nr *NppRefresherService) RefreshAllRegions() error {
	log.Printf("[NppRefresherService] Refreshing %d regions", len(nr.regions))

	var firstErr error
	for _, region := range nr.regions {
		log.Printf("[NppRefresherService] Refreshing region %s (%s)", region.RegionID, region.RegionName)
		if err := nr.RefreshRegion(region); err != nil {
			log.Printf("[NppRefresherService] Region %s failed: %v", region.RegionID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// RefreshRegion runs the four steps for one region: build the aligned
// series, harmonize, compute + export the batch, and cache the
// first-period diagnostics.
func (nr *NppRefresherService) RefreshRegion(region models.Region) error {
	cfg := config.DefaultPipelineConfig(region)
	nppService := NewNppService(nr.provider, nr.model, cfg)

	// 1) Build the schedule and the four unmasked series
	schedule, err := nppService.BuildSchedule()
	if err != nil {
		return err
	}
	series, err := nppService.BuildAllSeries(schedule)
	if err != nil {
		return err
	}

	// 2) Harmonize and run the batch over the whole schedule
	harmonized := nppService.Harmonize(series)
	images, err := nppService.ComputeForSchedule(harmonized[0], harmonized[1], harmonized[2], harmonized[3])
	if err != nil {
		return err
	}

	// 3) Export every period image and cache the task records
	dates := harmonized[0].Dates()
	for i, image := range images {
		name := fmt.Sprintf("npp_%s_%s", region.RegionID, dates[i])
		task, err := nr.provider.Export(image, name, region)
		if err != nil {
			log.Printf("[NppRefresherService] Export failed for %s: %v", name, err)
			continue
		}
		task.RegionID = region.RegionID
		task.Date = dates[i]
		if err := nr.nppDao.SetExportTask(task); err != nil {
			log.Printf("[NppRefresherService] Caching export task %s failed: %v", task.TaskID, err)
		}
	}

	// 4) Single representative period: diagnostics over the unmasked
	// series expose footprint mismatches the mask would hide.
	bundle, err := nppService.Bundle(series, 0)
	if err != nil {
		return err
	}
	_, diagnostics, err := nppService.ComputeForPeriod(bundle)
	if err != nil {
		return err
	}
	if err := nr.nppDao.SetPeriodDiagnostics(diagnostics); err != nil {
		log.Printf("[NppRefresherService] Caching diagnostics for %s failed: %v", region.RegionID, err)
	}

	// Keep the region geo-indexed for the nearby lookup endpoint.
	if err := nr.nppDao.UpsertRegion(region); err != nil {
		log.Printf("[NppRefresherService] Upserting region %s failed: %v", region.RegionID, err)
	}

	return nil
}
