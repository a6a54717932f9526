package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Provider rate ceilings. Nominatim and the public OSRM server both reject
// clients issuing more than one request per second.
const (
	MinGeocodeDelay = time.Second
	MinRouteDelay   = time.Second
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir   string
	StorePath string
	LogFile   string
	Verbose   bool

	CSVOutputPath string
	CSVSnapshots  bool

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SearchURL      string
	ProxyURL       string
	MaxRetries     int
	MaxHomes       int
	RegionDelay    time.Duration
	RequestTimeout time.Duration

	NominatimURL string
	OSRMURL      string
	UserAgent    string
	GeocodeDelay time.Duration
	RouteDelay   time.Duration
	GeocachePath string

	DetailPages bool
	DetailDelay time.Duration
	ChromeBin   string

	MetricsTextfile string

	ProfilePath string
	Profile     *Profile
}

// Load reads the .env file, the environment and the optional rating profile.
// A profile that fails validation is returned as an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	dataDir := getEnv("DATA_DIR", "./data")
	cfg := &Config{
		DataDir:   dataDir,
		StorePath: getEnv("STORE_PATH", filepath.Join(dataDir, "listings.json")),
		LogFile:   getEnv("LOG_FILE", filepath.Join(dataDir, "redfin_finder.log")),
		Verbose:   getEnvBool("VERBOSE", false),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", filepath.Join(dataDir, "listings.csv")),
		CSVSnapshots:  getEnvBool("CSV_SNAPSHOTS", true),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "finder"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "listings_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SearchURL:      getEnv("SEARCH_URL", "https://www.redfin.com/stingray/api/gis"),
		ProxyURL:       getEnv("PROXY_URL", ""),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		MaxHomes:       getEnvInt("MAX_HOMES", 350),
		RegionDelay:    getEnvDuration("REGION_DELAY_MS", 3000*time.Millisecond),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT_MS", 20*time.Second),

		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
		OSRMURL:      getEnv("OSRM_URL", "https://router.project-osrm.org"),
		UserAgent:    getEnv("USER_AGENT", "redfin-finder/1.0 (real-estate-search-tool)"),
		GeocodeDelay: atLeast(getEnvDuration("GEOCODE_DELAY_MS", 1100*time.Millisecond), MinGeocodeDelay),
		RouteDelay:   atLeast(getEnvDuration("ROUTE_DELAY_MS", 1100*time.Millisecond), MinRouteDelay),
		GeocachePath: getEnv("GEOCACHE_PATH", filepath.Join(dataDir, "geocache.db")),

		DetailPages: getEnvBool("DETAIL_PAGES", false),
		DetailDelay: getEnvDuration("DETAIL_DELAY_MS", 3000*time.Millisecond),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),

		ProfilePath: getEnv("PROFILE_PATH", ""),
	}

	profile, err := LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, err
	}
	cfg.Profile = profile
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration reads a millisecond count.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return fallback
}

func atLeast(d, min time.Duration) time.Duration {
	if d < min {
		log.Printf("[config] delay %v below provider minimum, using %v", d, min)
		return min
	}
	return d
}
