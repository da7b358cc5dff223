package parser

import (
	"regexp"
	"strings"
	"unicode"

	"resume-match-go/internal/types"
)

// 基础停用词表，预处理时从文本中剔除
var basicStopwords = types.NewStringSet(
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
	"has", "he", "in", "is", "it", "its", "of", "on", "that", "the",
	"to", "was", "will", "with", "this", "but", "they", "have",
	"had", "what", "said", "each", "which", "their", "time", "if", "up",
	"out", "many", "then", "them", "these", "so", "some", "her", "would",
	"make", "like", "into", "him", "two", "more", "very", "after",
	"words", "long", "than", "first", "been", "call", "who", "oil", "sit",
	"now", "find", "down", "day", "did", "get", "come", "made", "may", "part",
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// TextPreprocessor 文本预处理器：归一化空白、转小写、去标点、去停用词。
// 分词/词形还原等底层NLP能力不在职责范围内，这里只做轻量的词面清洗。
type TextPreprocessor struct {
	removeStopwords bool
}

// NewTextPreprocessor 创建默认配置的预处理器（启用停用词过滤）
func NewTextPreprocessor() *TextPreprocessor {
	return &TextPreprocessor{removeStopwords: true}
}

// Preprocess 对文本做完整预处理，返回清洗后的单行文本
func (p *TextPreprocessor) Preprocess(text string) string {
	if text == "" {
		return ""
	}

	// 归一化空白并转小写
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.ToLower(strings.TrimSpace(text))

	// 去除标点
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) {
			continue
		}
		sb.WriteRune(r)
	}
	text = sb.String()

	tokens := strings.Fields(text)
	if p.removeStopwords {
		kept := tokens[:0]
		for _, token := range tokens {
			if !basicStopwords.Contains(token) {
				kept = append(kept, token)
			}
		}
		tokens = kept
	}

	return strings.Join(tokens, " ")
}

// PreprocessList 预处理后按词切分返回
func (p *TextPreprocessor) PreprocessList(text string) []string {
	processed := p.Preprocess(text)
	if processed == "" {
		return []string{}
	}
	return strings.Split(processed, " ")
}

// CollapseWhitespace 仅把连续空白压缩为单个空格，不做其他处理。
// 验证阶段的扰动变体会用到。
func CollapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
