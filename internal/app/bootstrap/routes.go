// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	answersfeature "github.com/dalemusser/surveytrack/internal/app/features/answers"
	dashboardfeature "github.com/dalemusser/surveytrack/internal/app/features/dashboard"
	healthfeature "github.com/dalemusser/surveytrack/internal/app/features/health"
	locationsfeature "github.com/dalemusser/surveytrack/internal/app/features/locations"
	officersfeature "github.com/dalemusser/surveytrack/internal/app/features/officers"
	projectsfeature "github.com/dalemusser/surveytrack/internal/app/features/projects"
	schoolsfeature "github.com/dalemusser/surveytrack/internal/app/features/schools"
	smeanswersfeature "github.com/dalemusser/surveytrack/internal/app/features/smeanswers"
	surveysfeature "github.com/dalemusser/surveytrack/internal/app/features/surveys"
	usersfeature "github.com/dalemusser/surveytrack/internal/app/features/users"
	"github.com/dalemusser/surveytrack/internal/app/store/coordinatorassign"
	masterprojectstore "github.com/dalemusser/surveytrack/internal/app/store/masterprojects"
	officerstore "github.com/dalemusser/surveytrack/internal/app/store/officers"
	"github.com/dalemusser/surveytrack/internal/app/store/queries/assignedprojects"
	"github.com/dalemusser/surveytrack/internal/app/store/queries/progress"
	"github.com/dalemusser/surveytrack/internal/app/store/queries/roleschools"
	schoolstore "github.com/dalemusser/surveytrack/internal/app/store/schools"
	smeanswerstore "github.com/dalemusser/surveytrack/internal/app/store/smeanswers"
	surveyanswerstore "github.com/dalemusser/surveytrack/internal/app/store/surveyanswers"
	surveylocationstore "github.com/dalemusser/surveytrack/internal/app/store/surveylocations"
	surveystore "github.com/dalemusser/surveytrack/internal/app/store/surveys"
	userstore "github.com/dalemusser/surveytrack/internal/app/store/users"
	"github.com/dalemusser/surveytrack/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. SurveyTrack builds its stores
// and query resolvers here and mounts a JSON feature router for each
// application area: master projects, surveys, survey locations,
// officers, answers, schools, users, and the progress dashboard.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.SurveyTrackMongoDatabase

	projects := masterprojectstore.New(db)
	surveys := surveystore.New(db)
	locations := surveylocationstore.New(db)
	answers := surveyanswerstore.New(db)
	smeAnswers := smeanswerstore.New(db)
	officers := officerstore.New(db)
	assignments := coordinatorassign.New(db)
	schools := schoolstore.New(db)
	users := userstore.New(db)

	uploader := &officerstore.Uploader{
		Officers:    officers,
		Users:       users,
		Assignments: assignments,
		Log:         logger,
	}
	assigned := &assignedprojects.Resolver{
		Officers:    officers,
		Assignments: assignments,
		Projects:    projects,
		Users:       users,
	}
	schoolResolver := &roleschools.Resolver{
		Officers:  officers,
		Locations: locations,
		Schools:   schools,
		Answers:   answers,
	}
	aggregator := &progress.Aggregator{
		Locations: locations,
		Answers:   answers,
		Log:       logger,
	}
	dashMode := progress.CountDistinctSchools
	if appCfg.DashboardCountMode == "submissions" {
		dashMode = progress.CountSubmissions
	}
	uploads := ratelimit.New(appCfg.UploadRateLimit, time.Minute)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.SurveyTrackMongoClient, logger)))

	r.Mount("/master-projects", projectsfeature.Routes(projectsfeature.NewHandler(projects, surveys, locations, assignments, logger)))
	r.Mount("/surveys", surveysfeature.Routes(surveysfeature.NewHandler(surveys, logger)))
	r.Mount("/survey-locations", locationsfeature.Routes(locationsfeature.NewHandler(projects, locations, schools, logger), uploads))

	officersHandler := &officersfeature.Handler{
		Officers:  officers,
		Uploader:  uploader,
		Assigned:  assigned,
		Schools:   schoolResolver,
		Assignmts: assignments,
		Log:       logger,
	}
	r.Mount("/officers", officersfeature.Routes(officersHandler, uploads))

	r.Mount("/survey-answers", answersfeature.Routes(answersfeature.NewHandler(answers, surveys, locations, logger)))
	r.Mount("/sme-survey-answers", smeanswersfeature.Routes(smeanswersfeature.NewHandler(smeAnswers, logger)))
	r.Mount("/schools", schoolsfeature.Routes(schoolsfeature.NewHandler(schools, logger), uploads))
	r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(users, logger)))
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardfeature.NewHandler(aggregator, dashMode, logger)))

	return r, nil
}
