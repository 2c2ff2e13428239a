package applicanthistoryhandler

import (
	"fmt"

	dbmodels "ats-backend/models/db"
)

func GetCreateChanges(descr string, status, stageID string) dbmodels.ApplicantChanges {
	return dbmodels.ApplicantChanges{
		Description: descr,
		Data: []dbmodels.ApplicantChange{
			{
				Field:    "status",
				OldValue: nil,
				NewValue: status,
			},
			{
				Field:    "stage_id",
				OldValue: nil,
				NewValue: stageID,
			},
		},
	}
}

func GetStageChange(prevStatus, status, stageID string) dbmodels.ApplicantChanges {
	return dbmodels.ApplicantChanges{
		Description: fmt.Sprintf("Moved to stage %v", status),
		Data: []dbmodels.ApplicantChange{
			{
				Field:    "status",
				OldValue: prevStatus,
				NewValue: status,
			},
			{
				Field:    "stage_id",
				OldValue: nil,
				NewValue: stageID,
			},
		},
	}
}

func GetCloseChange(prevStatus, status string) dbmodels.ApplicantChanges {
	return dbmodels.ApplicantChanges{
		Description: fmt.Sprintf("Marked as %v", status),
		Data: []dbmodels.ApplicantChange{
			{
				Field:    "status",
				OldValue: prevStatus,
				NewValue: status,
			},
		},
	}
}

func GetRejectChange(prevStatus, reason string) dbmodels.ApplicantChanges {
	return dbmodels.ApplicantChanges{
		Description: fmt.Sprintf("Rejected: %v", reason),
		Data: []dbmodels.ApplicantChange{
			{
				Field:    "status",
				OldValue: prevStatus,
				NewValue: "Rejected",
			},
			{
				Field:    "reject_reason",
				OldValue: nil,
				NewValue: reason,
			},
		},
	}
}

func GetAtsAnalysisChange() dbmodels.ApplicantChanges {
	return dbmodels.ApplicantChanges{
		Description: "Ats analysis updated",
	}
}
