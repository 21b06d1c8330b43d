package main

import (
	"hospital-locator-service/internal/adapters/cache"
	"hospital-locator-service/internal/adapters/geoip"
	"hospital-locator-service/internal/adapters/maps"
	"hospital-locator-service/internal/adapters/repositories"
	"hospital-locator-service/internal/api"
	"hospital-locator-service/internal/config"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/platform/db"
	"hospital-locator-service/internal/ports"
	"hospital-locator-service/internal/services"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, GeoIP, Redis, Postgres) behind
// ports and starts the HTTP server. Both caches and the geolocator are
// optional; the locate pipeline itself only requires the maps API key.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	apiKey := os.Getenv("MAPS_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("MAPS_API_KEY is required")
	}

	port := config.Get("PORT", "8080")
	radiusMeters := config.GetInt("SEARCH_RADIUS_METERS", 5000)
	defaultCenter := domain.Coordinates{
		Lat: config.GetFloat("DEFAULT_LAT", 22.681014),
		Lng: config.GetFloat("DEFAULT_LNG", 75.879484),
	}

	// Route cache lives in Postgres when DATABASE_URL is set.
	var routeCache *cache.SQLRouteCache
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pool, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		if err := repositories.InitSchema(pool); err != nil {
			log.Fatal(err)
		}
		routeCache = cache.NewSQLRouteCache(pool)
		log.Println("route cache enabled (postgres)")
	} else {
		log.Println("DATABASE_URL not set; route caching disabled")
	}

	// Nearby-search cache lives in Redis when REDIS_ADDR is set.
	var placesCache *cache.RedisPlacesCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       config.GetInt("REDIS_DB", 0),
		})
		placesCache = cache.NewRedisPlacesCache(client)
		log.Println("places cache enabled (redis)")
	} else {
		log.Println("REDIS_ADDR not set; places caching disabled")
	}

	provider, err := maps.NewGoogleMapsClient(apiKey, placesCache, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	// Client-IP geolocation needs a local GeoLite2 City database.
	var geolocator ports.Geolocator
	if geoipPath := os.Getenv("GEOIP_DB_PATH"); strings.TrimSpace(geoipPath) != "" {
		mm, err := geoip.NewMaxMindLocator(geoipPath)
		if err != nil {
			log.Fatal(err)
		}
		defer mm.Close()
		geolocator = mm
		log.Println("geoip locator enabled")
	} else {
		log.Println("GEOIP_DB_PATH not set; sessions without coordinates use the default center")
	}

	store := repositories.NewMemorySessionStore()
	locator := services.NewLocator(store, provider, provider, radiusMeters)
	router := api.NewRouter(locator, geolocator, defaultCenter)

	// Timeouts are tuned for cold-cache sessions (two external API calls).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
