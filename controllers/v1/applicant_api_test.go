package apiv1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ats-backend/config"
	"ats-backend/lib/applicant"
	authutils "ats-backend/lib/utils/auth-utils"
	"ats-backend/lib/utils/lock"
	"ats-backend/middleware"
	"ats-backend/models"
	apimodels "ats-backend/models/api"
	applicantapimodels "ats-backend/models/api/applicant"
)

type fakeApplicants struct {
	applicant.Provider
	advanceErr  error
	advanceHMsg string
	spaceID     string
	author      applicant.Author
}

func (f *fakeApplicants) Advance(_ context.Context, spaceID string, author applicant.Author, applicantType models.ApplicantType, id string) (applicantapimodels.ApplicantView, string, error) {
	f.spaceID = spaceID
	f.author = author
	if f.advanceErr != nil || f.advanceHMsg != "" {
		return applicantapimodels.ApplicantView{}, f.advanceHMsg, f.advanceErr
	}
	return applicantapimodels.ApplicantView{ID: id, Type: applicantType, Status: "Interview"}, "", nil
}

func newTestApp() *fiber.App {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60

	app := fiber.New()
	app.Use(middleware.AuthorizationRequired())
	app.Use(middleware.SpaceRequired())
	InitApplicantApiRouters(app)
	return app
}

func advanceRequest(t *testing.T, path string, withToken bool) *http.Request {
	req := httptest.NewRequest(fiber.MethodPut, path, nil)
	if withToken {
		token, err := authutils.GetToken("user-1", "Jane Recruiter", "space-1")
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func TestAdvanceEndpoint(t *testing.T) {
	prev := applicant.Instance
	defer func() { applicant.Instance = prev }()

	t.Run("success", func(t *testing.T) {
		fake := &fakeApplicants{}
		applicant.Instance = fake
		app := newTestApp()

		resp, err := app.Test(advanceRequest(t, "/applicant/application/app-1/advance", true))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Status string                           `json:"status"`
			Data   applicantapimodels.ApplicantView `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "app-1", body.Data.ID)
		assert.Equal(t, "Interview", body.Data.Status)
		assert.Equal(t, "space-1", fake.spaceID)
		assert.Equal(t, "user-1", fake.author.ID)
		assert.Equal(t, "Jane Recruiter", fake.author.Name)
	})

	t.Run("concurrent change is a conflict", func(t *testing.T) {
		applicant.Instance = &fakeApplicants{advanceErr: errors.Wrap(lock.ErrInProgress, "application app-1")}
		app := newTestApp()

		resp, err := app.Test(advanceRequest(t, "/applicant/application/app-1/advance", true))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("refused transition", func(t *testing.T) {
		applicant.Instance = &fakeApplicants{advanceHMsg: "applicant is already at the last stage"}
		app := newTestApp()

		resp, err := app.Test(advanceRequest(t, "/applicant/assignment/as-1/advance", true))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body apimodels.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "applicant is already at the last stage", body.Message)
	})

	t.Run("internal error", func(t *testing.T) {
		applicant.Instance = &fakeApplicants{advanceErr: errors.New("db is down")}
		app := newTestApp()

		resp, err := app.Test(advanceRequest(t, "/applicant/application/app-1/advance", true))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("unknown applicant type", func(t *testing.T) {
		applicant.Instance = &fakeApplicants{}
		app := newTestApp()

		resp, err := app.Test(advanceRequest(t, "/applicant/offer/app-1/advance", true))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("token required", func(t *testing.T) {
		applicant.Instance = &fakeApplicants{}
		app := newTestApp()

		resp, err := app.Test(advanceRequest(t, "/applicant/application/app-1/advance", false))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
