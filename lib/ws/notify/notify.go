package wsnotify

import (
	"time"

	connectionhub "ats-backend/lib/ws/hub/connection-hub"
	wsmodels "ats-backend/models/ws"
)

// Notifier publishes pipeline events to the connected users of a space.
type Notifier interface {
	ApplicantStatusChanged(spaceID string, event wsmodels.ApplicantStatusEvent)
	JobStagesSaved(spaceID, jobID string)
}

func NewNotifier() Notifier {
	return hubNotifier{}
}

type hubNotifier struct{}

func (n hubNotifier) ApplicantStatusChanged(spaceID string, event wsmodels.ApplicantStatusEvent) {
	send(spaceID, wsmodels.ServerMessage{
		Code: wsmodels.EventApplicantStatus,
		Msg:  "applicant status changed",
		Data: event,
	})
}

func (n hubNotifier) JobStagesSaved(spaceID, jobID string) {
	send(spaceID, wsmodels.ServerMessage{
		Code: wsmodels.EventJobStages,
		Msg:  "job pipeline saved",
		Data: map[string]string{"job_id": jobID},
	})
}

func send(spaceID string, msg wsmodels.ServerMessage) {
	if connectionhub.Instance == nil {
		return
	}
	msg.Time = time.Now().Format(time.RFC3339)
	connectionhub.Instance.SendToSpace(spaceID, msg)
}
