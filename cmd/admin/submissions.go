package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
	"github.com/jawad-khan/xblock-group-project-v2/conf"
	"github.com/jawad-khan/xblock-group-project-v2/events"
	"github.com/jawad-khan/xblock-group-project-v2/projectapi"
	"github.com/jawad-khan/xblock-group-project-v2/s3bucket"
	"github.com/jawad-khan/xblock-group-project-v2/submsrvc"
)

func loadAwsConfig(ctx context.Context, cfg *conf.Config) (aws.Config, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AwsRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

func newSubmissionsCmd() *cobra.Command {
	var (
		stageID string
		groupID int
	)

	submissionsCmd := &cobra.Command{
		Use:   "submissions",
		Short: "Inspect group submissions stored in DynamoDB",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the latest upload of every submission slot of a stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := conf.Load()
			if err != nil {
				return err
			}
			a, err := activity.LoadFile(cfg.ManifestPath)
			if err != nil {
				return err
			}
			awsCfg, err := loadAwsConfig(ctx, cfg)
			if err != nil {
				return err
			}

			project := projectapi.NewDynamoDbClient(dynamodb.NewFromConfig(awsCfg), projectapi.DdbTableNames{
				Workgroups:  cfg.WorkgroupsTable,
				Submissions: cfg.SubmissionsTable,
				Reviews:     cfg.ReviewsTable,
				Completions: cfg.CompletionsTable,
			})
			srvc := submsrvc.NewSubmSrvc(submsrvc.Deps{
				Activity:  a,
				Storage:   s3bucket.NewS3Bucket(awsCfg, cfg.S3Bucket),
				Project:   project,
				Publisher: events.LogPublisher{},
			})

			slots, err := srvc.ListUploads(ctx, stageID, groupID)
			if err != nil {
				return err
			}
			log.Debug().Str("stageId", stageID).Int("groupId", groupID).Int("slots", len(slots)).Msg("listed uploads")
			return printSlots(cmd.OutOrStdout(), slots)
		},
	}
	listCmd.Flags().StringVarP(&stageID, "stage", "s", "", "Stage id (required)")
	listCmd.Flags().IntVarP(&groupID, "group", "g", 0, "Workgroup id (required)")
	listCmd.MarkFlagRequired("stage")
	listCmd.MarkFlagRequired("group")

	submissionsCmd.AddCommand(listCmd)
	return submissionsCmd
}

func printSlots(out io.Writer, slots []submsrvc.SlotUpload) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UPLOAD\tFILE\tDATE\tURL")
	for _, s := range slots {
		if s.Upload == nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\n", s.Submission.UploadID)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			s.Submission.UploadID, s.Upload.FileName, s.Upload.SubmissionDate, s.Upload.Location)
	}
	return w.Flush()
}
