package gpthandler

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"ats-backend/config"
	yagptclient "ats-backend/lib/gpt/yagpt-client"
	gptmodels "ats-backend/models/api/gpt"
)

const jobDescriptionPrompt = "You are a recruiter writing job postings. Write a clear job description " +
	"with the sections Responsibilities, Requirements and Conditions. Do not invent salary figures."

type Provider interface {
	GenerateJobDescription(ctx context.Context, spaceID string, request gptmodels.GenJobDescRequest) (resp gptmodels.GenJobDescResponse, hMsg string, err error)
}

type impl struct {
	client yagptclient.Provider
}

var Instance Provider

func NewHandler() {
	instance := impl{}
	if config.Conf.YandexGPT.IAMToken != "" && config.Conf.YandexGPT.CatalogID != "" {
		instance.client = yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID)
	}
	Instance = instance
}

func (i impl) GenerateJobDescription(ctx context.Context, spaceID string, request gptmodels.GenJobDescRequest) (resp gptmodels.GenJobDescResponse, hMsg string, err error) {
	if i.client == nil {
		return resp, "description generation is not configured", nil
	}
	text := fmt.Sprintf("Generate the description of the job from these notes: %s", strings.TrimSpace(request.Text))
	if title := strings.TrimSpace(request.Title); title != "" {
		text = fmt.Sprintf("Job title: %s. %s", title, text)
	}
	resp.Description, err = i.client.GenerateByPromptAndText(ctx, jobDescriptionPrompt, text)
	if err != nil {
		log.
			WithField("space_id", spaceID).
			WithError(err).
			Error("job description generation failed")
		return resp, "", err
	}
	return resp, "", nil
}
