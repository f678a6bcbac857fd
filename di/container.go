package di

import (
	"context"
	"fmt"
	"log"
	"os"

	"npp-server/api"
	"npp-server/api/prodmodel"
	"npp-server/api/rasterprovider"
	"npp-server/config"
	"npp-server/dao/redis"
	"npp-server/db"
	"npp-server/models"
	"npp-server/server"
	"npp-server/server/handlers"
	services "npp-server/service"
	"npp-server/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient         db.RedisClient
	RedisNppDao         *redis.RedisNppDAO
	RasterProvider      rasterprovider.RasterProvider
	ProductivityModel   prodmodel.ProductivityModel
	NppHandler          *handlers.NppHandler
	MuxRouter           *mux.Router
	Router              *server.Router
	NppHttpServer       *server.NppHttpServer
	NppRefresherService *services.NppRefresherService
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.REDIS_DB_ADDRESS,
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})

	// Initialize Redis client
	redisClient := db.NewGeoRedisClient(ctx, redisInternalClient)
	if err := redisClient.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}

	// Initialize Redis NPP DAO
	redisNppDao := redis.NewRedisNppDAO(redisClient)

	// Initialize raster provider - mock outside prod
	var rasterProvider rasterprovider.RasterProvider
	if env != "prod" {
		log.Printf("Using mock raster provider")
		catalog, err := util.ReadCollectionCatalogFromJSON(config.GetResourcePath(config.COLLECTION_CATALOG_RESOURCE))
		if err != nil {
			panic(fmt.Sprintf("Failed to load mock collection catalog: %v", err))
		}
		rasterProvider = rasterprovider.NewRasterProviderMock(catalog)
	} else {
		log.Printf("Using prod raster provider")
		httpClient := api.NewHTTPClient(config.RASTER_PROVIDER_ENDPOINT_BASE_V1)

		client := rasterprovider.NewRasterProviderClient(httpClient)
		client.SetAPIKey(os.Getenv(config.RASTER_PROVIDER_API_KEY_ENV))
		rasterProvider = client
	}

	// Initialize productivity model - mock outside prod
	var productivityModel prodmodel.ProductivityModel
	if env != "prod" {
		log.Printf("Using mock productivity model")
		productivityModel = prodmodel.NewProductivityModelMock()
	} else {
		log.Printf("Using prod productivity model")
		httpClient := api.NewHTTPClient(config.PRODUCTIVITY_MODEL_ENDPOINT_BASE_V1)
		productivityModel = prodmodel.NewProductivityModelClient(httpClient)
	}

	// Regions of interest; the refresher falls back to its defaults
	// when the resource is absent.
	var regions []models.Region
	if loaded, err := util.ReadRegionsFromJSON(config.GetResourcePath(config.REGIONS_RESOURCE)); err != nil {
		log.Printf("No regions resource, falling back to defaults: %v", err)
	} else {
		regions = loaded
	}

	// Initialize npp handler
	nppHandler := handlers.NewNppHandler(redisNppDao)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(nppHandler, muxRouter)

	// Initialize npp server
	nppHttpServer := server.NewNppHttpServer(router, muxRouter)

	nppRefresherService := services.NewNppRefresherService(redisNppDao, rasterProvider, productivityModel, regions)

	return &Container{
		RedisClient:         redisClient,
		RedisNppDao:         redisNppDao,
		RasterProvider:      rasterProvider,
		ProductivityModel:   productivityModel,
		NppHandler:          nppHandler,
		MuxRouter:           muxRouter,
		Router:              router,
		NppHttpServer:       nppHttpServer,
		NppRefresherService: nppRefresherService,
	}
}
