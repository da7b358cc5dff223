package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/dict"
	"resume-match-go/internal/extractor"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(extractor.New(dict.Default()))
}

func TestAnalyzeATSCompleteResume(t *testing.T) {
	a := newTestAnalyzer()
	resume := "Experience\nbuilt services\nEducation\nBachelor of CS\nSkills\nPython"

	report := a.AnalyzeATS(resume, "")
	assert.Equal(t, 100, report.ATSScore)
	assert.Empty(t, report.MissingSections)
	assert.Empty(t, report.Issues)
}

func TestAnalyzeATSMissingSections(t *testing.T) {
	a := newTestAnalyzer()
	report := a.AnalyzeATS("just some text about python", "")

	// 三个关键章节全缺：100 - 3*20 - 3*5 = 25
	assert.Equal(t, 25, report.ATSScore)
	assert.Equal(t, []string{"experience", "education", "skills"}, report.MissingSections)
	assert.Len(t, report.Issues, 3)

	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, "CRITICAL: Add missing sections: experience, education, skills", report.Recommendations[0])
}

func TestAnalyzeATSKeywordPlacement(t *testing.T) {
	a := newTestAnalyzer()
	resume := "Skills\nPython projects\nPython services\nExperience\nEducation"
	job := "Python and AWS required"

	report := a.AnalyzeATS(resume, job)

	python, ok := report.KeywordPlacement["python"]
	require.True(t, ok)
	assert.True(t, python.Present)
	assert.Equal(t, 2, python.Mentions)
	assert.Equal(t, "good", python.Recommendation)

	aws, ok := report.KeywordPlacement["aws"]
	require.True(t, ok)
	assert.False(t, aws.Present)
	assert.Equal(t, "add", aws.Recommendation)

	assert.Contains(t, report.Suggestions, "Consider adding these job keywords: aws")
	assert.Contains(t, report.Recommendations, "Add these keywords: aws")
}

func TestAnalyzeATSSingleMention(t *testing.T) {
	a := newTestAnalyzer()
	resume := "Experience\nEducation\nSkills\nPython once"

	report := a.AnalyzeATS(resume, "Python needed")
	assert.Equal(t, "increase", report.KeywordPlacement["python"].Recommendation)
}
