package handler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/agent"
	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"
	"resume-match-go/internal/dict"
	"resume-match-go/internal/types"
)

func newTestHandler(t *testing.T) *handler.MatchHandler {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	orchestrator := agent.NewOrchestrator(dict.Default(), nil)
	return handler.NewMatchHandler(cfg, orchestrator)
}

func TestHandleMatch(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: "Senior Engineer with Python and Django. 5 years of experience.",
		JobText:    "Python is required. Django is required.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RequestID)
	assert.Greater(t, result.MatchScore, 0.0)
	assert.Len(t, result.Messages, 5)
}

func TestHandleMatchUsesConfiguredWeights(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Scoring.Weights = types.WeightVector{Skills: 1.0}
	h := handler.NewMatchHandler(cfg, agent.NewOrchestrator(dict.Default(), nil))

	result, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: "Senior Engineer with Python and Django. 5 years of experience.",
		JobText:    "Python is required. Django is required.",
	})
	require.NoError(t, err)

	// 请求未携带权重时采用配置中的评分权重，其余维度贡献为0
	assert.Equal(t, 0.0, result.AgentContributions["experience"])
	assert.Equal(t, 0.0, result.AgentContributions["education"])
	assert.Equal(t, 0.0, result.AgentContributions["tools"])
	assert.Greater(t, result.AgentContributions["skills"], 0.0)
}

func TestHandleMatchRequestWeightsOverrideConfig(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Scoring.Weights = types.WeightVector{Skills: 1.0}
	h := handler.NewMatchHandler(cfg, agent.NewOrchestrator(dict.Default(), nil))

	result, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: "Senior Engineer with Python and Django. 5 years of experience.",
		JobText:    "Python is required. Django is required.",
		Weights:    &types.WeightVector{Experience: 1.0},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.AgentContributions["skills"])
	assert.Greater(t, result.AgentContributions["experience"], 0.0)
}

func TestHandleMatchBothTextsEmpty(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.HandleMatch(context.Background(), &handler.MatchRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestHandleMatchInvalidWeights(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: "Python developer",
		JobText:    "Python required",
		Weights:    &types.WeightVector{Skills: 0.9, Experience: 0.9},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidWeights)
}

func TestHandleBatchMatch(t *testing.T) {
	h := newTestHandler(t)

	result, err := h.HandleBatchMatch(context.Background(), &handler.BatchMatchRequest{
		ResumeText: "Python developer with AWS background",
		Jobs: []agent.JobPosting{
			{ID: "1", Title: "Backend", Text: "Python is required."},
			{ID: "2", Title: "Infra", Text: "Terraform is required. Ansible is required."},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Rankings, 2)
	assert.Equal(t, "1", result.Rankings[0].JobID)
	assert.Equal(t, 2, result.Stats.TotalJobs)
}

func TestHandleBatchMatchValidation(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.HandleBatchMatch(context.Background(), &handler.BatchMatchRequest{ResumeText: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)

	_, err = h.HandleBatchMatch(context.Background(), &handler.BatchMatchRequest{
		ResumeText: "x",
		Jobs:       []agent.JobPosting{{ID: "1", Text: "  "}},
	})
	assert.ErrorIs(t, err, types.ErrInvalidRequest)
}
