package documenthandler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	documentapimodels "ats-backend/models/api/document"
	dbmodels "ats-backend/models/db"
)

type fakeStorage struct {
	objects map[string][]byte
}

func (f *fakeStorage) MakeBucket(context.Context) error {
	return nil
}

func (f *fakeStorage) PutObject(_ context.Context, key string, body []byte, _ string) error {
	f.objects[key] = body
	return nil
}

func (f *fakeStorage) GetObject(_ context.Context, key string) ([]byte, error) {
	return f.objects[key], nil
}

func (f *fakeStorage) PresignedGetURL(_ context.Context, key, _ string, ttl time.Duration) (string, error) {
	return "https://s3.local/" + key + "?ttl=" + ttl.String(), nil
}

func (f *fakeStorage) RemoveObject(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

type fakeDocuments struct {
	recs map[string]dbmodels.Document
}

func (f *fakeDocuments) Create(rec dbmodels.Document) (string, error) {
	rec.ID = "doc-1"
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeDocuments) GetByID(_, id string) (*dbmodels.Document, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeDocuments) ListByCandidate(_, candidateID string) ([]dbmodels.Document, error) {
	list := []dbmodels.Document{}
	for _, rec := range f.recs {
		if rec.CandidateID == candidateID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeDocuments) LastResume(_, candidateID string) (*dbmodels.Document, error) {
	for _, rec := range f.recs {
		if rec.CandidateID == candidateID && rec.Type == dbmodels.DocumentResume && rec.Text != "" {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeDocuments) Delete(_, id string) error {
	delete(f.recs, id)
	return nil
}

type fakeCandidates struct {
	rec *dbmodels.Candidate
	upd map[string]interface{}
}

func (f *fakeCandidates) Create(dbmodels.Candidate) (string, error) {
	return "", nil
}

func (f *fakeCandidates) Update(_, _ string, updMap map[string]interface{}) error {
	f.upd = updMap
	return nil
}

func (f *fakeCandidates) GetByID(_, id string) (*dbmodels.Candidate, error) {
	if f.rec == nil || f.rec.ID != id {
		return nil, nil
	}
	return f.rec, nil
}

func (f *fakeCandidates) FindByEmail(string, string) (*dbmodels.Candidate, error) {
	return nil, nil
}

func (f *fakeCandidates) List(string, string, int, int) ([]dbmodels.Candidate, int64, error) {
	return nil, 0, nil
}

func newHandler() (impl, *fakeStorage, *fakeCandidates) {
	candidate := &dbmodels.Candidate{FirstName: "Jane", ResumeText: "old resume"}
	candidate.ID = "cand-1"
	storage := &fakeStorage{objects: map[string][]byte{}}
	candidates := &fakeCandidates{rec: candidate}
	h := impl{
		store:          &fakeDocuments{recs: map[string]dbmodels.Document{}},
		candidateStore: candidates,
		storage:        storage,
		shareTTL:       time.Hour,
		now:            func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
	}
	return h, storage, candidates
}

func TestUpload(t *testing.T) {
	ctx := context.TODO()

	t.Run(`text resume`, func(t *testing.T) {
		h, storage, candidates := newHandler()
		item, hMsg, err := h.Upload(ctx, "space", documentapimodels.UploadRequest{
			CandidateID: "cand-1",
			FileName:    "jane.txt",
			Body:        []byte("  Go developer, 5 years  "),
		})
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, dbmodels.DocumentResume, item.Type)
		require.True(t, item.HasText)
		require.Len(t, storage.objects, 1)
		for key := range storage.objects {
			require.True(t, strings.HasPrefix(key, "space/cand-1/"))
			require.True(t, strings.HasSuffix(key, ".txt"))
		}
		require.Equal(t, "Go developer, 5 years", candidates.upd["resume_text"])

		text, err := h.ResumeText("space", "cand-1")
		require.Nil(t, err)
		require.Equal(t, "Go developer, 5 years", text)
	})

	t.Run(`unsupported type`, func(t *testing.T) {
		h, storage, _ := newHandler()
		_, hMsg, err := h.Upload(ctx, "space", documentapimodels.UploadRequest{
			CandidateID: "cand-1",
			FileName:    "photo.png",
			Body:        []byte{1, 2, 3},
		})
		require.Nil(t, err)
		require.Contains(t, hMsg, "unsupported file type")
		require.Empty(t, storage.objects)
	})

	t.Run(`unknown candidate`, func(t *testing.T) {
		h, _, _ := newHandler()
		_, hMsg, err := h.Upload(ctx, "space", documentapimodels.UploadRequest{
			CandidateID: "cand-2",
			FileName:    "cv.txt",
			Body:        []byte("text"),
		})
		require.Nil(t, err)
		require.Equal(t, "candidate not found", hMsg)
	})

	t.Run(`storage not configured`, func(t *testing.T) {
		h, _, _ := newHandler()
		h.storage = nil
		_, hMsg, err := h.Upload(ctx, "space", documentapimodels.UploadRequest{
			CandidateID: "cand-1",
			FileName:    "cv.txt",
			Body:        []byte("text"),
		})
		require.Nil(t, err)
		require.Equal(t, "document storage is not configured", hMsg)
	})
}

func TestShareLink(t *testing.T) {
	ctx := context.TODO()
	h, _, _ := newHandler()
	item, _, err := h.Upload(ctx, "space", documentapimodels.UploadRequest{
		CandidateID: "cand-1",
		Type:        dbmodels.DocumentCoverLetter,
		FileName:    "letter.txt",
		Body:        []byte("Dear team"),
	})
	require.Nil(t, err)

	link, hMsg, err := h.ShareLink(ctx, "space", item.ID)
	require.Nil(t, err)
	require.Empty(t, hMsg)
	require.Contains(t, link.URL, "ttl=1h0m0s")
	require.Equal(t, time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC), link.ExpiresAt)

	_, hMsg, err = h.ShareLink(ctx, "space", "missing")
	require.Nil(t, err)
	require.Equal(t, "document not found", hMsg)

	// cover letters do not replace the resume text
	text, err := h.ResumeText("space", "cand-1")
	require.Nil(t, err)
	require.Equal(t, "old resume", text)
}

func TestExtractText(t *testing.T) {
	t.Run(`long text is capped`, func(t *testing.T) {
		body := []byte(strings.Repeat("ü", maxTextLen))
		text, err := ExtractText("cv.txt", "text/plain", body)
		require.Nil(t, err)
		require.LessOrEqual(t, len(text), maxTextLen)
		require.True(t, strings.HasPrefix(text, "üü"))
	})

	t.Run(`invalid utf-8`, func(t *testing.T) {
		_, err := ExtractText("cv.txt", "text/plain", []byte{0xff, 0xfe})
		require.NotNil(t, err)
	})
}
