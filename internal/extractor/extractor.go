package extractor

import (
	"regexp"
	"strings"

	"resume-match-go/internal/dict"
	"resume-match-go/internal/types"
)

// Extractor 基于静态词表的实体抽取器。
// 匹配为大小写不敏感的词边界字面量查找，不做词干化或模糊匹配。
// 所有正则在构造时编译完成，实例可被多个请求并发使用。
type Extractor struct {
	dictionary *dict.Dictionary

	skillPatterns      map[string]*regexp.Regexp
	toolPatterns       map[string]*regexp.Regexp
	educationPatterns  map[string]*regexp.Regexp
	experiencePatterns map[string]*regexp.Regexp
}

// New 创建实体抽取器并预编译全部词条的匹配正则
func New(dictionary *dict.Dictionary) *Extractor {
	e := &Extractor{
		dictionary:         dictionary,
		skillPatterns:      make(map[string]*regexp.Regexp, len(dictionary.Skills)),
		toolPatterns:       make(map[string]*regexp.Regexp, len(dictionary.Tools)),
		educationPatterns:  make(map[string]*regexp.Regexp, len(dictionary.Education)),
		experiencePatterns: make(map[string]*regexp.Regexp, len(dictionary.Experience)),
	}

	for skill := range dictionary.Skills {
		e.skillPatterns[skill] = WordPattern(skill)
	}
	for tool := range dictionary.Tools {
		e.toolPatterns[tool] = WordPattern(tool)
	}
	for _, keyword := range dictionary.Education {
		e.educationPatterns[keyword] = WordPattern(keyword)
	}
	for _, keyword := range dictionary.Experience {
		e.experiencePatterns[keyword] = WordPattern(keyword)
	}

	return e
}

// WordPattern 为词条生成词边界匹配正则。
// 词条首尾是字母数字时加 \b，否则省略（例如 "c++"、"c#" 的尾部无法用 \b 界定）。
// 空词条返回永不匹配的正则。
func WordPattern(term string) *regexp.Regexp {
	if term == "" {
		return regexp.MustCompile(`\b\B`)
	}
	quoted := regexp.QuoteMeta(strings.ToLower(term))
	prefix, suffix := "", ""
	if isWordChar(term[0]) {
		prefix = `\b`
	}
	if isWordChar(term[len(term)-1]) {
		suffix = `\b`
	}
	return regexp.MustCompile(prefix + quoted + suffix)
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// ExtractSkills 从文本中抽取技能集合，空文本返回空集合
func (e *Extractor) ExtractSkills(text string) types.StringSet {
	found := make(types.StringSet)
	if text == "" {
		return found
	}

	textLower := strings.ToLower(text)
	for skill, pattern := range e.skillPatterns {
		if pattern.MatchString(textLower) {
			found.Add(skill)
		}
	}
	return found
}

// ExtractTools 抽取工具集合。技能词表中的词条多数也是工具，
// 故结果为技能命中与工具词表命中的并集。
func (e *Extractor) ExtractTools(text string) types.StringSet {
	found := e.ExtractSkills(text)
	if text == "" {
		return found
	}

	textLower := strings.ToLower(text)
	for tool, pattern := range e.toolPatterns {
		if pattern.MatchString(textLower) {
			found.Add(tool)
		}
	}
	return found
}

// ExtractEducation 抽取学历相关关键词，按词表顺序返回
func (e *Extractor) ExtractEducation(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}

	textLower := strings.ToLower(text)
	for _, keyword := range e.dictionary.Education {
		if e.educationPatterns[keyword].MatchString(textLower) {
			found = append(found, keyword)
		}
	}
	return found
}

// ExtractExperienceKeywords 抽取经验相关关键词，按词表顺序返回
func (e *Extractor) ExtractExperienceKeywords(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}

	textLower := strings.ToLower(text)
	for _, keyword := range e.dictionary.Experience {
		if e.experiencePatterns[keyword].MatchString(textLower) {
			found = append(found, keyword)
		}
	}
	return found
}

// ExtractAll 一次性抽取全部实体。幂等且与调用顺序无关：
// 相同文本永远得到相同的实体集合。
func (e *Extractor) ExtractAll(text string) *types.EntitySet {
	return &types.EntitySet{
		Skills:            e.ExtractSkills(text),
		Tools:             e.ExtractTools(text),
		EducationMarkers:  e.ExtractEducation(text),
		ExperienceMarkers: e.ExtractExperienceKeywords(text),
	}
}
