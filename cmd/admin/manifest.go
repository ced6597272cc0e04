package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jawad-khan/xblock-group-project-v2/activity"
)

func newManifestCmd() *cobra.Command {
	var path string

	manifestCmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect activity manifests",
	}
	manifestCmd.PersistentFlags().StringVarP(&path, "file", "f", "activity.toml", "Path to the activity manifest")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an activity manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := activity.LoadFile(path)
			if err != nil {
				var verr *activity.ValidationError
				if errors.As(err, &verr) {
					for _, p := range verr.Problems {
						fmt.Fprintln(cmd.OutOrStdout(), p)
					}
					return fmt.Errorf("%d problems in %s", len(verr.Problems), path)
				}
				return err
			}
			log.Info().Str("activity", a.ID).Int("stages", len(a.Stages)).Msg("manifest is valid")
			return nil
		},
	}

	stagesCmd := &cobra.Command{
		Use:   "stages",
		Short: "List stages with their schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := activity.LoadFile(path)
			if err != nil {
				return err
			}
			return printStages(cmd.OutOrStdout(), a, time.Now())
		},
	}

	manifestCmd.AddCommand(validateCmd, stagesCmd)
	return manifestCmd
}

func printStages(out io.Writer, a *activity.Activity, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tOPENS\tCLOSES\tAVAILABLE")
	for _, st := range a.Stages {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
			st.ID, st.Type, formatDate(st.OpenDate), formatDate(st.CloseDate), st.AvailableNow(now))
	}
	return w.Flush()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
