package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"npp-server/config"
	"npp-server/db"
	"npp-server/di"
	"npp-server/models"
	"npp-server/pipeline"
	"npp-server/service"
	"npp-server/util"
)

func testRedisClient(redisClient db.RedisClient) db.RedisClient {
	// Set a key-value pair
	if err := redisClient.Set("mykey", "myvalue"); err != nil {
		log.Fatalf("Failed to set key: %v", err)
	}

	// Get the value for the key
	val, err := redisClient.Get("mykey")
	if err != nil {
		log.Fatalf("Failed to get key: %v", err)
	}
	fmt.Printf("mykey: %s\n", val)

	return redisClient
}

func testSchedule() {
	log.Println("Running: testSchedule")
	cfg := config.DefaultPipelineConfig(models.Region{RegionID: "demo", RegionName: "Demo"})
	schedule, err := pipeline.BuildSchedule(cfg.Anchors)
	if err != nil {
		log.Println("Error while building schedule: ", err)
		return
	}
	util.PrintSchedulePartially(schedule)
}

func testPipeline(container *di.Container) {
	log.Println("Running: testPipeline")
	regions, err := util.ReadRegionsFromJSON(config.GetResourcePath(config.REGIONS_RESOURCE))
	if err != nil || len(regions) == 0 {
		log.Println("No regions resource available for the pipeline demo")
		return
	}
	region := regions[0]
	util.PlotRegionBoundingBox(region)

	nppService := services.NewNppService(
		container.RasterProvider, container.ProductivityModel, config.DefaultPipelineConfig(region))

	schedule, err := nppService.BuildSchedule()
	if err != nil {
		log.Println("Error building schedule: ", err)
		return
	}
	series, err := nppService.BuildAllSeries(schedule)
	if err != nil {
		log.Println("Error building series: ", err)
		return
	}

	bundle, err := nppService.Bundle(series, 0)
	if err != nil {
		log.Println("Error bundling first period: ", err)
		return
	}
	_, diagnostics, err := nppService.ComputeForPeriod(bundle)
	if err != nil {
		log.Println("Error computing first period: ", err)
		return
	}
	util.PrintDiagnosticsPartially(diagnostics)
	util.PlotValidPixelCounts(diagnostics)
}

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = "dev"
	}
	container := di.NewContainer(env)

	// testRedisClient(container.RedisClient)
	// testSchedule()
	// testPipeline(container)

	fmt.Println("refreshing!")
	if err := container.NppRefresherService.RefreshAllRegions(); err != nil {
		log.Printf("[MAIN] Initial refresh finished with error: %v", err)
	}
	fmt.Println("starting periodic job!")
	container.NppRefresherService.StartPeriodicJob(config.NPP_REFRESHER_SERVICE_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.NppHttpServer.Start()
	fmt.Println("server stopped!")
}
