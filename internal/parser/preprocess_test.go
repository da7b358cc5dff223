package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess(t *testing.T) {
	p := NewTextPreprocessor()

	got := p.Preprocess("The quick, Brown Fox!  Jumps over 3 lazy dogs.")
	assert.Equal(t, "quick brown fox jumps over 3 lazy dogs", got)
}

func TestPreprocess_EmptyAndWhitespace(t *testing.T) {
	p := NewTextPreprocessor()

	assert.Equal(t, "", p.Preprocess(""))
	assert.Equal(t, "", p.Preprocess("   \n\t  "))
	// 全是停用词的文本清洗后为空
	assert.Equal(t, "", p.Preprocess("the and of in"))
}

func TestPreprocess_MultilineNormalization(t *testing.T) {
	p := NewTextPreprocessor()

	got := p.Preprocess("python\n\n  django \t docker")
	assert.Equal(t, "python django docker", got)
}

func TestPreprocessList(t *testing.T) {
	p := NewTextPreprocessor()

	assert.Equal(t, []string{"python", "django"}, p.PreprocessList("Python, the Django."))
	assert.Equal(t, []string{}, p.PreprocessList("  "))
}

func TestCollapseWhitespace(t *testing.T) {
	// 只压缩空白, 保留大小写与标点
	assert.Equal(t, "The Fox, runs!", CollapseWhitespace("  The \n\t Fox,   runs!  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
}
