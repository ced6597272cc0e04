package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/conf"
	"github.com/jawad-khan/xblock-group-project-v2/events"
	"github.com/jawad-khan/xblock-group-project-v2/feedback"
	"github.com/jawad-khan/xblock-group-project-v2/http"
	"github.com/jawad-khan/xblock-group-project-v2/notify"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/s3bucket"
	"github.com/jawad-khan/xblock-group-project-v2/submsrvc"
)

var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := conf.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	jwtKey, err := cfg.ResolveJwtKey(ctx)
	if err != nil {
		slog.Error("failed to resolve jwt key", "error", err)
		os.Exit(1)
	}

	a, err := activity.LoadFile(cfg.ManifestPath)
	if err != nil {
		slog.Error("failed to load activity manifest", "path", cfg.ManifestPath, "error", err)
		os.Exit(1)
	}
	slog.Info("loaded activity", "id", a.ID, "stages", len(a.Stages))

	var (
		storage   submsrvc.FileStorage
		project   projectapi.Client
		publisher events.Publisher = events.LogPublisher{}
		notifier  notify.Notifier  = notify.ConsoleNotifier{}
		files     nethttp.Handler
	)

	if cfg.UseS3() {
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AwsRegion))
		if err != nil {
			slog.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}

		storage = s3bucket.NewS3Bucket(awsCfg, cfg.S3Bucket)
		project = projectapi.NewDynamoDbClient(dynamodb.NewFromConfig(awsCfg), projectapi.DdbTableNames{
			Workgroups:  cfg.WorkgroupsTable,
			Submissions: cfg.SubmissionsTable,
			Reviews:     cfg.ReviewsTable,
			Completions: cfg.CompletionsTable,
		})
		if cfg.EventsQueueURL != "" {
			publisher = events.NewSqsPublisher(sqs.NewFromConfig(awsCfg), cfg.EventsQueueURL)
		}
	} else {
		memStorage := submsrvc.NewInMemFileStorage(cfg.FilesBaseURL)
		storage = memStorage
		files = nethttp.StripPrefix("/files", memStorage)

		memProject := projectapi.NewInMemClient()
		if cfg.ProjectSeed != "" {
			err = memProject.LoadSeed(cfg.ProjectSeed)
			if err != nil {
				slog.Error("failed to seed project api", "error", err)
				os.Exit(1)
			}
		}
		project = memProject
	}

	if cfg.SendgridKey != "" {
		notifier = notify.NewSendgridNotifier(cfg.SendgridKey, cfg.NotifyAppName, cfg.SendgridFrom)
	}

	submSrvc := submsrvc.NewSubmSrvc(submsrvc.Deps{
		Activity:  a,
		Storage:   storage,
		Project:   project,
		Publisher: publisher,
		Notifier:  notifier,
	})
	feedbackSrvc := feedback.NewFeedbackSrvc(a, project)

	httpServer := http.NewHttpServer(a, project, submSrvc, feedbackSrvc, http.Options{
		JwtKey:      jwtKey,
		CorsOrigins: cfg.CorsOrigins,
		Debug:       cfg.Debug,
		Version:     version,
	})
	defer httpServer.Close()
	if files != nil {
		httpServer.Mount("/files", files)
	}

	log.Printf("Starting server on %s", cfg.Address)
	err = httpServer.Start(cfg.Address)
	log.Printf("Server stopped with error: %v", err)
}
