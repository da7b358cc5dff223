package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

const sampleResume = `Senior Software Engineer
8 years of experience in backend development
Master of Science in Computer Science
Skills: Python, Django, Docker, AWS, Kubernetes, PostgreSQL
2019-2023 Acme Corp`

func TestResumeParserExtractsProfile(t *testing.T) {
	p := NewResumeParser(newTestExtractor())
	pc := NewPipelineContext(sampleResume, "", nil)

	msg, err := p.Process(context.Background(), pc)
	require.NoError(t, err)
	require.NotNil(t, pc.Profile)

	profile := pc.Profile
	assert.True(t, profile.Skills.Contains("python"))
	assert.True(t, profile.Skills.Contains("django"))
	assert.True(t, profile.Skills.Contains("aws"))
	assert.True(t, profile.Skills.Contains("kubernetes"))

	// 多个模式命中时取最大年限：8 years 胜过 1 个年份区间
	assert.InDelta(t, 8.0, profile.ExperienceYears, 0.001)
	assert.Equal(t, types.EducationMasters, profile.EducationLevel)

	require.Len(t, profile.Titles, 1)
	assert.Equal(t, "Senior Software Engineer", profile.Titles[0])

	// 技能>5、年限>0、学历已知、有头衔，置信度拉满
	assert.InDelta(t, 1.0, msg.Confidence, 0.001)
	assert.Equal(t, "resume_parser", msg.StageName)
}

func TestResumeParserEmptyText(t *testing.T) {
	p := NewResumeParser(newTestExtractor())
	pc := NewPipelineContext("   ", "some job", nil)

	msg, err := p.Process(context.Background(), pc)
	require.NoError(t, err)

	// 空文本不报错，返回零置信度的空画像，下游继续降级运行
	require.NotNil(t, pc.Profile)
	assert.Empty(t, pc.Profile.Skills)
	assert.Empty(t, pc.Profile.Titles)
	assert.Equal(t, 0.0, msg.Confidence)
	assert.Equal(t, "No resume text provided", msg.Reasoning)
}

func TestResumeParserExperienceFallback(t *testing.T) {
	// 没有任何年限表述时按头衔数估算：3个头衔 -> 4.5年
	text := "Software Engineer\nData Analyst\nProduct Manager"
	years := extractResumeExperienceYears(text, 3)
	assert.InDelta(t, 4.5, years, 0.001)

	// 估算值封顶10年
	years = extractResumeExperienceYears("no signal here", 9)
	assert.InDelta(t, 10.0, years, 0.001)
}

func TestResumeParserDateRanges(t *testing.T) {
	// 只有年份区间时，区间个数作为一个估算值计入
	text := "2018-2020 first role\n2020 - present second role"
	years := extractResumeExperienceYears(text, 0)
	assert.InDelta(t, 2.0, years, 0.001)
}

func TestResumeParserEducationPriority(t *testing.T) {
	// 同时出现多个学历关键词时取最高层级
	assert.Equal(t, types.EducationPhD, extractEducationLevel("PhD in CS, also holds a Bachelor of Arts"))
	assert.Equal(t, types.EducationBachelors, extractEducationLevel("Bachelor of Engineering"))
	assert.Equal(t, types.EducationDiploma, extractEducationLevel("holds a certification in welding"))
	assert.Equal(t, types.EducationUnknown, extractEducationLevel("no credentials listed"))
}

func TestResumeParserTitleRules(t *testing.T) {
	// 头衔行必须含职位关键词且长度在6到49字符之间，最多取5个
	text := "Lead\nSenior Software Engineer\nLead Developer\nStaff Engineer at a very long company name that goes on and on forever\nplain line"
	titles := extractJobTitles(text)
	assert.Equal(t, []string{"Senior Software Engineer", "Lead Developer"}, titles)
}
