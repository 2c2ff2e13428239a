package dbmodels

type Document struct {
	BaseSpaceModel
	CandidateID string       `gorm:"type:varchar(36);index"`
	JobID       *string      `gorm:"type:varchar(36)"`
	Name        string       `gorm:"type:varchar(255)"`
	Type        DocumentType `gorm:"type:varchar(50)"`
	ContentType string       `gorm:"type:varchar(255)"`
	Size        int64
	ObjectKey   string `gorm:"type:varchar(255)"`
	Text        string // extracted plain text
}

type DocumentType string

const (
	DocumentResume      DocumentType = "resume"
	DocumentCoverLetter DocumentType = "cover_letter"
	DocumentOther       DocumentType = "other"
)

func (t DocumentType) IsValid() bool {
	return t == DocumentResume || t == DocumentCoverLetter || t == DocumentOther
}
