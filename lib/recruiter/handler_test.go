package recruiterhandler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	recruiterapimodels "ats-backend/models/api/recruiter"
	dbmodels "ats-backend/models/db"
)

type fakeStore struct {
	recs map[string]dbmodels.Recruiter
	upd  map[string]interface{}
}

func (f *fakeStore) Create(rec dbmodels.Recruiter) (string, error) {
	rec.ID = "rec-" + rec.LastName
	f.recs[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) Update(_, _ string, updMap map[string]interface{}) error {
	f.upd = updMap
	return nil
}

func (f *fakeStore) GetByID(_, id string) (*dbmodels.Recruiter, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) FindByEmail(_, email string) (*dbmodels.Recruiter, error) {
	for _, rec := range f.recs {
		if strings.EqualFold(rec.Email, email) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) List(string, recruiterapimodels.RecruiterFilter) ([]dbmodels.Recruiter, int64, error) {
	list := []dbmodels.Recruiter{}
	for _, rec := range f.recs {
		list = append(list, rec)
	}
	return list, int64(len(list)), nil
}

func (f *fakeStore) Delete(_, id string) error {
	delete(f.recs, id)
	return nil
}

func TestRecruiterHandler(t *testing.T) {
	valid := recruiterapimodels.RecruiterData{
		FirstName:       "Anna",
		LastName:        "Smith",
		Email:           "anna@example.com",
		Specializations: []string{"backend", "devops"},
		IsActive:        true,
	}

	t.Run(`create`, func(t *testing.T) {
		store := &fakeStore{recs: map[string]dbmodels.Recruiter{}}
		h := impl{store: store}
		id, hMsg, err := h.Create("space", valid)
		require.Nil(t, err)
		require.Empty(t, hMsg)
		view, hMsg, err := h.Get("space", id)
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "Anna Smith", view.FullName)
		require.Equal(t, []string{"backend", "devops"}, view.Specializations)
	})

	t.Run(`invalid email`, func(t *testing.T) {
		h := impl{store: &fakeStore{recs: map[string]dbmodels.Recruiter{}}}
		data := valid
		data.Email = "not-an-email"
		_, hMsg, err := h.Create("space", data)
		require.Nil(t, err)
		require.Equal(t, "Email is not a valid email", hMsg)
	})

	t.Run(`missing name`, func(t *testing.T) {
		h := impl{store: &fakeStore{recs: map[string]dbmodels.Recruiter{}}}
		data := valid
		data.FirstName = ""
		_, hMsg, err := h.Create("space", data)
		require.Nil(t, err)
		require.Equal(t, "FirstName is required", hMsg)
	})

	t.Run(`duplicate email`, func(t *testing.T) {
		store := &fakeStore{recs: map[string]dbmodels.Recruiter{}}
		h := impl{store: store}
		_, _, err := h.Create("space", valid)
		require.Nil(t, err)
		data := valid
		data.LastName = "Jones"
		data.Email = "ANNA@example.com"
		_, hMsg, err := h.Create("space", data)
		require.Nil(t, err)
		require.Equal(t, "recruiter with this email already exists", hMsg)
	})

	t.Run(`update keeps own email`, func(t *testing.T) {
		store := &fakeStore{recs: map[string]dbmodels.Recruiter{}}
		h := impl{store: store}
		id, _, err := h.Create("space", valid)
		require.Nil(t, err)
		data := valid
		data.Title = "Lead recruiter"
		hMsg, err := h.Update("space", id, data)
		require.Nil(t, err)
		require.Empty(t, hMsg)
		require.Equal(t, "Lead recruiter", store.upd["title"])
	})
}
