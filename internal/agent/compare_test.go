package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/dict"
)

func TestCompareJobsRanking(t *testing.T) {
	o := NewOrchestrator(dict.Default(), newTestEncoder())

	jobs := []JobPosting{
		{ID: "job-1", Title: "JVM Engineer", Text: "Rust is required. Scala is required. Jenkins is required."},
		{ID: "job-2", Title: "Python Engineer", Text: "Python is required. Django is required. AWS preferred."},
	}

	result, err := o.CompareJobs(context.Background(), sampleResume, jobs, nil)
	require.NoError(t, err)
	require.Len(t, result.Rankings, 2)

	// 技能吻合的岗位排在前面，名次从1开始
	assert.Equal(t, "job-2", result.Rankings[0].JobID)
	assert.Equal(t, 1, result.Rankings[0].Rank)
	assert.Equal(t, 2, result.Rankings[1].Rank)
	assert.GreaterOrEqual(t, result.Rankings[0].MatchScore, result.Rankings[1].MatchScore)
	require.NotNil(t, result.Rankings[0].Result)

	stats := result.Stats
	assert.Equal(t, 2, stats.TotalJobs)
	assert.Equal(t, result.Rankings[0].MatchScore, stats.HighestScore)
	assert.Equal(t, result.Rankings[1].MatchScore, stats.LowestScore)
	assert.InDelta(t, stats.HighestScore-stats.LowestScore, stats.ScoreRange, 0.01)
}

func TestCompareJobsCommonMissing(t *testing.T) {
	o := NewOrchestrator(dict.Default(), nil)

	// 两个岗位都要求terraform，缺失统计里应排在最前
	jobs := []JobPosting{
		{ID: "a", Text: "Terraform is required. Jenkins is required."},
		{ID: "b", Text: "Terraform is required. Ansible is required."},
	}

	result, err := o.CompareJobs(context.Background(), sampleResume, jobs, nil)
	require.NoError(t, err)
	require.NotEmpty(t, result.CommonMissingSkills)
	assert.Equal(t, "terraform", result.CommonMissingSkills[0])
}

func TestCompareJobsEmptyInput(t *testing.T) {
	o := NewOrchestrator(dict.Default(), nil)
	_, err := o.CompareJobs(context.Background(), sampleResume, nil, nil)
	assert.Error(t, err)
}
