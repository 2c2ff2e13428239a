package documenthandler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ats-backend/config"
	"ats-backend/db"
	candidatestore "ats-backend/lib/candidate/store"
	documentstore "ats-backend/lib/document/store"
	documentapimodels "ats-backend/models/api/document"
	dbmodels "ats-backend/models/db"
	s3client "ats-backend/s3"
)

const maxFileSize = 10 << 20

var errNotConfigured = errors.New("document storage is not configured")

type Provider interface {
	Upload(ctx context.Context, spaceID string, request documentapimodels.UploadRequest) (item documentapimodels.DocumentView, hMsg string, err error)
	ListByCandidate(spaceID, candidateID string) (list []documentapimodels.DocumentView, err error)
	ShareLink(ctx context.Context, spaceID, id string) (link documentapimodels.ShareLinkView, hMsg string, err error)
	Download(ctx context.Context, spaceID, id string) (body []byte, rec *dbmodels.Document, err error)
	Delete(ctx context.Context, spaceID, id string) (hMsg string, err error)
	// ResumeText returns the newest extracted resume text of the candidate.
	ResumeText(spaceID, candidateID string) (string, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:          documentstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
		storage:        s3client.Client,
		shareTTL:       time.Duration(config.Conf.S3.ShareLinkTTLMin) * time.Minute,
		now:            time.Now,
	}
}

type impl struct {
	store          documentstore.Provider
	candidateStore candidatestore.Provider
	storage        s3client.Provider
	shareTTL       time.Duration
	now            func() time.Time
}

func (i impl) getLogger(spaceID, id string) *log.Entry {
	logger := log.WithField("space_id", spaceID)
	if id != "" {
		logger = logger.WithField("document_id", id)
	}
	return logger
}

func (i impl) Upload(ctx context.Context, spaceID string, request documentapimodels.UploadRequest) (item documentapimodels.DocumentView, hMsg string, err error) {
	logger := i.getLogger(spaceID, "").WithField("candidate_id", request.CandidateID)
	if i.storage == nil {
		return documentapimodels.DocumentView{}, errNotConfigured.Error(), nil
	}
	if request.Type == "" {
		request.Type = dbmodels.DocumentResume
	}
	if !request.Type.IsValid() {
		return documentapimodels.DocumentView{}, fmt.Sprintf("unknown document type %q", request.Type), nil
	}
	if len(request.Body) == 0 {
		return documentapimodels.DocumentView{}, "file is empty", nil
	}
	if len(request.Body) > maxFileSize {
		return documentapimodels.DocumentView{}, "file is larger than 10 MB", nil
	}
	if !isSupported(request.FileName) {
		return documentapimodels.DocumentView{}, "unsupported file type, expected pdf, doc, docx, rtf, odt or txt", nil
	}
	candidate, err := i.candidateStore.GetByID(spaceID, request.CandidateID)
	if err != nil {
		return documentapimodels.DocumentView{}, "", err
	}
	if candidate == nil {
		return documentapimodels.DocumentView{}, "candidate not found", nil
	}

	key := fmt.Sprintf("%v/%v/%v%v", spaceID, candidate.ID, uuid.NewString(), strings.ToLower(filepath.Ext(request.FileName)))
	contentType := mimeType(request.FileName, request.ContentType)
	if err = i.storage.PutObject(ctx, key, request.Body, contentType); err != nil {
		return documentapimodels.DocumentView{}, "", err
	}
	text, err := ExtractText(request.FileName, contentType, request.Body)
	if err != nil {
		// the file is kept, only ats analysis loses its input
		logger.WithError(err).Warn("document text not extracted")
	}
	rec := dbmodels.Document{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		CandidateID: candidate.ID,
		Name:        filepath.Base(request.FileName),
		Type:        request.Type,
		ContentType: contentType,
		Size:        int64(len(request.Body)),
		ObjectKey:   key,
		Text:        text,
	}
	if request.JobID != "" {
		jobID := request.JobID
		rec.JobID = &jobID
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return documentapimodels.DocumentView{}, "", err
	}
	rec.ID = id
	if rec.Type == dbmodels.DocumentResume && text != "" {
		err = i.candidateStore.Update(spaceID, candidate.ID, map[string]interface{}{"resume_text": text})
		if err != nil {
			logger.WithError(err).Warn("candidate resume text not updated")
		}
	}
	logger.
		WithField("document_id", id).
		WithField("size", rec.Size).
		Info("document uploaded")
	return documentapimodels.DocumentConvert(rec), "", nil
}

func (i impl) ListByCandidate(spaceID, candidateID string) (list []documentapimodels.DocumentView, err error) {
	recList, err := i.store.ListByCandidate(spaceID, candidateID)
	if err != nil {
		return nil, err
	}
	result := make([]documentapimodels.DocumentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, documentapimodels.DocumentConvert(rec))
	}
	return result, nil
}

func (i impl) ShareLink(ctx context.Context, spaceID, id string) (link documentapimodels.ShareLinkView, hMsg string, err error) {
	if i.storage == nil {
		return documentapimodels.ShareLinkView{}, errNotConfigured.Error(), nil
	}
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return documentapimodels.ShareLinkView{}, "", err
	}
	if rec == nil {
		return documentapimodels.ShareLinkView{}, "document not found", nil
	}
	url, err := i.storage.PresignedGetURL(ctx, rec.ObjectKey, rec.Name, i.shareTTL)
	if err != nil {
		return documentapimodels.ShareLinkView{}, "", err
	}
	return documentapimodels.ShareLinkView{
		URL:       url,
		ExpiresAt: i.now().Add(i.shareTTL),
	}, "", nil
}

func (i impl) Download(ctx context.Context, spaceID, id string) (body []byte, rec *dbmodels.Document, err error) {
	rec, err = i.store.GetByID(spaceID, id)
	if err != nil || rec == nil {
		return nil, nil, err
	}
	if i.storage == nil {
		return nil, nil, errNotConfigured
	}
	body, err = i.storage.GetObject(ctx, rec.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return body, rec, nil
}

func (i impl) Delete(ctx context.Context, spaceID, id string) (hMsg string, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "document not found", nil
	}
	if i.storage != nil {
		if err = i.storage.RemoveObject(ctx, rec.ObjectKey); err != nil {
			i.getLogger(spaceID, id).WithError(err).Warn("document object not removed")
		}
	}
	if err = i.store.Delete(spaceID, id); err != nil {
		return "", err
	}
	i.getLogger(spaceID, id).Info("document deleted")
	return "", nil
}

func (i impl) ResumeText(spaceID, candidateID string) (string, error) {
	rec, err := i.store.LastResume(spaceID, candidateID)
	if err != nil {
		return "", err
	}
	if rec != nil {
		return rec.Text, nil
	}
	candidate, err := i.candidateStore.GetByID(spaceID, candidateID)
	if err != nil || candidate == nil {
		return "", err
	}
	return candidate.ResumeText, nil
}
