package wsmodels

type ServerMessage struct {
	ToUserID string      `json:"-"`
	Time     string      `json:"time"`           // event time
	Code     EventCode   `json:"code"`           // event code
	Msg      string      `json:"msg"`            // event text
	Data     interface{} `json:"data,omitempty"` // event payload
}

type EventCode string

const (
	// an applicant changed status, clients refetch the job's applicants
	EventApplicantStatus EventCode = "applicant_status"
	// a job pipeline was saved
	EventJobStages EventCode = "job_stages"
	// answer to a client keepalive ping
	EventPong EventCode = "pong"
)

type ApplicantStatusEvent struct {
	JobID       string `json:"job_id"`
	ApplicantID string `json:"applicant_id"`
	Type        string `json:"type"`
	PrevStatus  string `json:"prev_status"`
	Status      string `json:"status"`
}
