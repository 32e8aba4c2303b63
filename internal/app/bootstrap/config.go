// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for SurveyTrack.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, mongo_database, etc.
//   - Environment variables: SURVEYTRACK_MONGO_URI, SURVEYTRACK_MONGO_DATABASE, etc.
//   - Command-line flags: --mongo_uri, --mongo_database, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "survey_track", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "dashboard_count_mode", Default: "distinct", Desc: "Dashboard surveyed count: 'distinct' schools or raw 'submissions'"},

	{Name: "upload_rate_limit", Default: 10, Desc: "Max CSV upload requests per client IP per minute"},

	// Database operation timeouts (e.g., 5s, 1m). Blank keeps defaults.
	{Name: "timeout_short", Default: "", Desc: "Timeout for single-document operations"},
	{Name: "timeout_medium", Default: "", Desc: "Timeout for list and aggregate operations"},
	{Name: "timeout_long", Default: "", Desc: "Timeout for cross-collection resolution"},
	{Name: "timeout_batch", Default: "", Desc: "Timeout for CSV batch ingestion"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SURVEYTRACK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		DashboardCountMode: appValues.String("dashboard_count_mode"),
		UploadRateLimit:    appValues.Int("upload_rate_limit"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
		TimeoutBatch:  appValues.Duration("timeout_batch", 0),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// SurveyTrack validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	switch appCfg.DashboardCountMode {
	case "distinct", "submissions":
	default:
		return fmt.Errorf("dashboard_count_mode must be 'distinct' or 'submissions', got %q", appCfg.DashboardCountMode)
	}
	if appCfg.UploadRateLimit < 1 {
		return fmt.Errorf("upload_rate_limit must be at least 1, got %d", appCfg.UploadRateLimit)
	}
	return nil
}
