package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/feedback"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/submsrvc"
)

type Options struct {
	JwtKey      []byte
	CorsOrigins []string
	Debug       bool
	Version     string
}

type HttpServer struct {
	activity     *activity.Activity
	project      projectapi.Client
	submSrvc     *submsrvc.SubmSrvc
	feedbackSrvc *feedback.FeedbackSrvc

	router *chi.Mux
	stats  *statsLogger
	jwtKey []byte
	now    func() time.Time
}

func NewHttpServer(
	a *activity.Activity,
	project projectapi.Client,
	submSrvc *submsrvc.SubmSrvc,
	feedbackSrvc *feedback.FeedbackSrvc,
	opts Options,
) *HttpServer {
	router := chi.NewRouter()

	logLevel := slog.LevelInfo
	env := "prod"
	if opts.Debug {
		logLevel = slog.LevelDebug
		env = "dev"
	}
	logger := httplog.NewLogger("group-projects", httplog.Options{
		LogLevel:         logLevel,
		Concise:          true,
		RequestHeaders:   opts.Debug,
		MessageFieldName: "message",
		Tags: map[string]string{
			"version": opts.Version,
			"env":     env,
		},
	})

	router.Use(httplog.RequestLogger(logger))
	router.Use(requestLoggerMiddleware)

	stats := newStatsLogger(30 * time.Second)
	router.Use(stats.middleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	router.Use(getJwtAuthMiddleware(opts.JwtKey))

	server := &HttpServer{
		activity:     a,
		project:      project,
		submSrvc:     submSrvc,
		feedbackSrvc: feedbackSrvc,
		router:       router,
		stats:        stats,
		jwtKey:       opts.JwtKey,
		now:          time.Now,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

// Mount serves handler under pattern next to the API routes.
func (httpserver *HttpServer) Mount(pattern string, handler http.Handler) {
	httpserver.router.Mount(pattern, handler)
}

// Close stops the periodic stats flush.
func (httpserver *HttpServer) Close() {
	httpserver.stats.stop()
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Route("/stages/{stageId}", func(r chi.Router) {
		r.Get("/state", httpserver.getStageState)
		r.Get("/resources", httpserver.getResources)
		r.Get("/submissions", httpserver.getSubmissions)
		r.Post("/uploads/{uploadId}", httpserver.uploadSubmission)
		r.Get("/uploads/{uploadId}", httpserver.getUpload)
		r.Get("/questions/{questionId}", httpserver.getQuestion)
		r.Get("/displays/{displayId}", httpserver.getAssessment)
	})
}
