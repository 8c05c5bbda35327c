// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/churnops/mlreg/pkg/promote"
	"github.com/spf13/cobra"
)

func planFromFlags(cmd *cobra.Command, plan *promote.Plan) (err error) {
	flags := cmd.Flags()
	for name, ptr := range map[string]*string{
		"model":               &plan.ModelName,
		"run-id":              &plan.RunID,
		"metric":              &plan.Metric,
		"filter":              &plan.Filter,
		"artifact-path":       &plan.ArtifactPath,
		"model-description":   &plan.ModelDescription,
		"version-description": &plan.VersionDescription,
		"comment":             &plan.Comment,
	} {
		if flags.Changed(name) {
			if *ptr, err = flags.GetString(name); err != nil {
				return err
			}
		}
	}
	if flags.Changed("experiment-id") {
		if plan.ExperimentIDs, err = flags.GetStringSlice("experiment-id"); err != nil {
			return err
		}
	}
	if flags.Changed("stage") {
		s, err := flags.GetString("stage")
		if err != nil {
			return err
		}
		if plan.Stage, err = payload.ParseStage(s); err != nil {
			return err
		}
	}
	if flags.Changed("archive-existing") {
		if plan.ArchiveExisting, err = flags.GetBool("archive-existing"); err != nil {
			return err
		}
	}
	if flags.Changed("tag") {
		tags, err := flags.GetStringToString("tag")
		if err != nil {
			return err
		}
		if plan.Tags == nil {
			plan.Tags = map[string]string{}
		}
		for k, v := range tags {
			plan.Tags[k] = v
		}
	}
	if flags.Changed("poll-interval") {
		if plan.PollInterval, err = flags.GetDuration("poll-interval"); err != nil {
			return err
		}
	}
	if flags.Changed("ready-timeout") {
		if plan.ReadyTimeout, err = flags.GetDuration("ready-timeout"); err != nil {
			return err
		}
	}
	return nil
}

func printResult(cmd *cobra.Command, plan *promote.Plan, res *promote.Result) {
	if res.MetricValue != nil {
		cmd.Printf("Selected run %s (%s = %g)\n", res.RunID, plan.Metric, *res.MetricValue)
	}
	cmd.Printf("Registered %s version %s from run %s\n", plan.ModelName, res.ModelVersion.Version, res.RunID)
	cmd.Printf("Requested transition to %s\n", plan.Stage)
}

func newPromoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Register a run as a new model version and request a stage transition.",
		Long:  "Register a run as a new model version and request a stage transition. Without --run-id the run with the highest --metric in the given experiments is picked. Defaults come from the promote section of config. With --schedule (or promote.schedule in config) the command keeps running and promotes on every tick.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "promote the best run of an experiment to Staging",
				Line:    "mlreg promote --model hhar_churn --experiment-id 1234 --metric val_f1_score",
			},
			{
				Comment: "register a known run, tag it and archive what is currently in Staging once approved",
				Line:    "mlreg promote --run-id 5c1b... --tag db_table=ibm_telco_churn.churn_features --archive-existing",
			},
			{
				Comment: "promote on the first day of every month",
				Line:    "mlreg promote --schedule '0 6 1 * *'",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			plan := promote.PlanFromConfig(s.Config)
			if err = planFromFlags(cmd, plan); err != nil {
				return err
			}
			if err = plan.Validate(); err != nil {
				return err
			}
			schedule, err := cmd.Flags().GetString("schedule")
			if err != nil {
				return err
			}
			if schedule == "" && s.Config.Promote != nil {
				schedule = s.Config.Promote.Schedule
			}
			logger := utils.GetLogger(cmd)
			p := promote.NewPromoter(s.Client, logger)
			if schedule == "" {
				res, err := p.Run(cmd.Context(), plan)
				if err != nil {
					return s.HandleError(cmd, err)
				}
				printResult(cmd, plan, res)
				return nil
			}

			sched := promote.NewScheduler(p, logger)
			sched.OnResult = func(res *promote.Result, err error) {
				if err != nil {
					cmd.PrintErrf("Promotion failed: %v\n", err)
					return
				}
				printResult(cmd, plan, res)
			}
			if _, err = sched.Add(schedule, plan); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			cmd.Printf("Promoting %s on schedule %q\n", plan.ModelName, schedule)
			return sched.Run(ctx)
		},
	}
	cmd.Flags().StringP("model", "m", "", "registered model name. Defaults to model.name from config")
	cmd.Flags().String("run-id", "", "register this run instead of picking the best one")
	cmd.Flags().StringSlice("experiment-id", nil, "experiments searched for the best run, can be repeated")
	cmd.Flags().String("metric", "", "metric picking the best run, highest wins")
	cmd.Flags().String("filter", "", `runs/search filter, e.g. "attributes.status = 'FINISHED'"`)
	cmd.Flags().String("artifact-path", "", "path of the model artifact inside the run (default \"model\")")
	cmd.Flags().StringToString("tag", nil, "run tag set before registration, e.g. --tag db_table=churn_features")
	cmd.Flags().String("model-description", "", "description of the registered model")
	cmd.Flags().String("version-description", "", "description of the new version")
	cmd.Flags().String("stage", "", "stage requested for the new version (default Staging)")
	cmd.Flags().Bool("archive-existing", false, "archive versions currently in the stage once the request is approved")
	cmd.Flags().StringP("comment", "c", "", "comment left on the new version")
	cmd.Flags().String("schedule", "", `cron spec such as "0 6 1 * *" or "@monthly"`)
	cmd.Flags().Duration("poll-interval", 0, "interval between model version status checks (default 5s)")
	cmd.Flags().Duration("ready-timeout", 0, "how long to wait for the new version to be READY (default 10m)")
	return cmd
}
