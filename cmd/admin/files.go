package main

import (
	"fmt"
	"path"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jawad-khan/xblock-group-project-v2/conf"
	"github.com/jawad-khan/xblock-group-project-v2/s3bucket"
)

func newFilesCmd() *cobra.Command {
	var (
		courseID string
		groupID  int
	)

	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "List uploaded deliverables in the S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := conf.Load()
			if err != nil {
				return err
			}
			if !cfg.UseS3() {
				return fmt.Errorf("files are only listable with the %s storage backend", conf.StorageS3)
			}
			awsCfg, err := loadAwsConfig(ctx, cfg)
			if err != nil {
				return err
			}

			prefix := "group_work/"
			if courseID != "" {
				prefix = path.Join("group_work", courseID) + "/"
				if groupID != 0 {
					prefix = path.Join("group_work", courseID, strconv.Itoa(groupID)) + "/"
				}
			}

			bucket := s3bucket.NewS3Bucket(awsCfg, cfg.S3Bucket)
			keys, err := bucket.ListFiles(ctx, prefix)
			if err != nil {
				return err
			}
			log.Info().Str("prefix", prefix).Int("count", len(keys)).Msg("listed files")
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), bucket.ObjectURL(key))
			}
			return nil
		},
	}
	filesCmd.Flags().StringVarP(&courseID, "course", "c", "", "Only list files of this course")
	filesCmd.Flags().IntVarP(&groupID, "group", "g", 0, "Only list files of this workgroup, requires --course")

	return filesCmd
}
