package main

import (
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"ats-backend/config"
	"ats-backend/db"
	"ats-backend/initializers"
	"ats-backend/lib/pipeline/stagelist"
	"ats-backend/models"
	dbmodels "ats-backend/models/db"
)

var backfillStagesCmd = &cobra.Command{
	Use:   "backfill-stages",
	Short: "Normalize stored pipelines and link applicants to stage ids",
	Long: "Re-encodes the pipeline of every job with dense order and stable stage ids, " +
		"then fills the stage id of applicants that only carry a stage name.",
	RunE: runBackfillStages,
}

var (
	backfillBatchSize int
	backfillDryRun    bool
)

func init() {
	backfillStagesCmd.Flags().IntVar(&backfillBatchSize, "batch", 100, "Jobs loaded per batch")
	backfillStagesCmd.Flags().BoolVar(&backfillDryRun, "dry-run", false, "Report changes without writing them")
	rootCmd.AddCommand(backfillStagesCmd)
}

func runBackfillStages(_ *cobra.Command, _ []string) error {
	config.InitConfig()
	initializers.InitDBConnection()

	var jobs []dbmodels.Job
	var jobsChanged, applicantsLinked int64
	res := db.DB.Model(&dbmodels.Job{}).FindInBatches(&jobs, backfillBatchSize, func(tx *gorm.DB, batch int) error {
		for _, job := range jobs {
			logger := log.WithField("space_id", job.SpaceID).WithField("job_id", job.ID)
			encoded, changed, err := normalizeStages(job.ApplicationStages)
			if err != nil {
				return errors.Wrapf(err, "job %v", job.ID)
			}
			stages := stagelist.Decode(encoded)
			if changed {
				jobsChanged++
				logger.Info("pipeline normalized")
				if !backfillDryRun {
					err = db.DB.Model(&dbmodels.Job{}).Where("id = ?", job.ID).Update("application_stages", encoded).Error
					if err != nil {
						return errors.Wrapf(err, "job %v pipeline update", job.ID)
					}
				}
			}
			linked, err := linkApplicants(job.ID, stages)
			if err != nil {
				return errors.Wrapf(err, "job %v applicants", job.ID)
			}
			applicantsLinked += linked
		}
		log.WithField("batch", batch).Debug("jobs batch processed")
		return nil
	})
	if res.Error != nil {
		return res.Error
	}
	log.
		WithField("jobs_normalized", jobsChanged).
		WithField("applicants_linked", applicantsLinked).
		WithField("dry_run", backfillDryRun).
		Info("stage backfill finished")
	return nil
}

// normalizeStages returns the canonical stored form of a pipeline and whether it differs
// from the stored text. Jobs without a stored pipeline keep using the default one.
func normalizeStages(stored string) (encoded string, changed bool, err error) {
	if strings.TrimSpace(stored) == "" {
		return stored, false, nil
	}
	encoded, err = stagelist.Encode(stagelist.Decode(stored))
	if err != nil {
		return "", false, err
	}
	return encoded, encoded != stored, nil
}

func linkApplicants(jobID string, stages stagelist.List) (linked int64, err error) {
	for _, model := range []interface{}{&dbmodels.Application{}, &dbmodels.Assignment{}} {
		for _, stage := range stages {
			if models.IsTerminalStatus(stage.Name) {
				continue
			}
			tx := db.DB.Model(model).
				Where("job_id = ? AND status = ? AND (stage_id = '' OR stage_id IS NULL)", jobID, stage.Name)
			if backfillDryRun {
				var count int64
				if err = tx.Count(&count).Error; err != nil {
					return linked, err
				}
				linked += count
				continue
			}
			res := tx.Update("stage_id", stage.ID)
			if res.Error != nil {
				return linked, res.Error
			}
			linked += res.RowsAffected
		}
	}
	return linked, nil
}
