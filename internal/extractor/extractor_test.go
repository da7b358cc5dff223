package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/dict"
)

func newTestExtractor() *Extractor {
	return New(dict.Default())
}

func TestWordPattern_Boundaries(t *testing.T) {
	sql := WordPattern("sql")
	assert.True(t, sql.MatchString("writes sql queries"))
	assert.True(t, sql.MatchString("sql"))
	// 词边界约束: 不匹配更长词条的内部子串
	assert.False(t, sql.MatchString("postgresql tuning"))
	assert.False(t, sql.MatchString("mysqldump"))

	java := WordPattern("java")
	assert.True(t, java.MatchString("java backend"))
	assert.False(t, java.MatchString("javascript frontend"))
}

func TestWordPattern_NonAlphanumericEdges(t *testing.T) {
	cpp := WordPattern("c++")
	assert.True(t, cpp.MatchString("proficient in c++"))
	assert.True(t, cpp.MatchString("c++ and rust"))
	// 尾部非字母数字, 不加 \b, 也因此允许紧跟字母
	assert.True(t, cpp.MatchString("c++11"))
	assert.False(t, cpp.MatchString("objc codebase"))

	csharp := WordPattern("c#")
	assert.True(t, csharp.MatchString("c# services"))
	assert.False(t, csharp.MatchString("plain c code"))
}

func TestWordPattern_EmptyTermNeverMatches(t *testing.T) {
	p := WordPattern("")
	assert.False(t, p.MatchString(""))
	assert.False(t, p.MatchString("python developer"))
}

func TestNew_ToleratesEmptyDictionaryEntries(t *testing.T) {
	d := dict.Default()
	d.Skills.Add("")
	d.Education = append(d.Education, "")

	var e *Extractor
	assert.NotPanics(t, func() { e = New(d) })

	skills := e.ExtractSkills("python backend")
	assert.True(t, skills.Contains("python"))
	assert.False(t, skills.Contains(""))
}

func TestExtractSkills(t *testing.T) {
	e := newTestExtractor()

	skills := e.ExtractSkills("Built APIs with Python and Django, deployed on AWS.")
	assert.True(t, skills.Contains("python"))
	assert.True(t, skills.Contains("django"))
	assert.True(t, skills.Contains("aws"))
	assert.False(t, skills.Contains("java"))
}

func TestExtractSkills_CaseInsensitive(t *testing.T) {
	e := newTestExtractor()

	lower := e.ExtractSkills("python kubernetes")
	upper := e.ExtractSkills("PYTHON KUBERNETES")
	assert.Equal(t, lower.Sorted(), upper.Sorted())
}

func TestExtractSkills_EmptyText(t *testing.T) {
	e := newTestExtractor()

	skills := e.ExtractSkills("")
	assert.Empty(t, skills)
}

func TestExtractSkills_MultiWordTerm(t *testing.T) {
	e := newTestExtractor()

	skills := e.ExtractSkills("Applied machine learning to ranking problems.")
	assert.True(t, skills.Contains("machine learning"))
}

func TestExtractTools_UnionWithSkills(t *testing.T) {
	e := newTestExtractor()

	tools := e.ExtractTools("Tracked work in Jira, built dashboards in Tableau, scripted with Python.")
	// 工具词表命中
	assert.True(t, tools.Contains("jira"))
	assert.True(t, tools.Contains("tableau"))
	// 技能命中也计入工具
	assert.True(t, tools.Contains("python"))
}

func TestExtractEducation_Order(t *testing.T) {
	e := newTestExtractor()

	found := e.ExtractEducation("Holds a Master degree, previously earned a Bachelor.")
	// 返回顺序跟随词表顺序, 与文本出现顺序无关
	assert.Equal(t, []string{"bachelor", "master", "degree"}, found)
}

func TestExtractEducation_ShortFormBoundaries(t *testing.T) {
	e := newTestExtractor()

	// "ms" 等缩写受词边界保护, 不应命中普通单词内部
	found := e.ExtractEducation("maintains systems and backend basics")
	assert.Empty(t, found)

	found = e.ExtractEducation("MS in Computer Science")
	assert.Contains(t, found, "ms")
}

func TestExtractExperienceKeywords(t *testing.T) {
	e := newTestExtractor()

	found := e.ExtractExperienceKeywords("Designed and built pipelines over 5 years of experience.")
	assert.Contains(t, found, "years")
	assert.Contains(t, found, "experience")
	assert.Contains(t, found, "designed")
	assert.Contains(t, found, "built")
}

func TestExtractAll_Deterministic(t *testing.T) {
	e := newTestExtractor()
	text := "Senior engineer, 6 years of experience. Python, Docker, Jira. MS degree."

	first := e.ExtractAll(text)
	second := e.ExtractAll(text)
	require.NotNil(t, first)

	assert.Equal(t, first.Skills.Sorted(), second.Skills.Sorted())
	assert.Equal(t, first.Tools.Sorted(), second.Tools.Sorted())
	assert.Equal(t, first.EducationMarkers, second.EducationMarkers)
	assert.Equal(t, first.ExperienceMarkers, second.ExperienceMarkers)
}
