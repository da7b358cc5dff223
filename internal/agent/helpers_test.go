package agent

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/components/embedding"

	"resume-match-go/internal/dict"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/parser"
)

// 测试用嵌入模型模拟器：按字节直方图生成确定性向量，
// 相同文本得到完全相同的向量，无需依赖外部服务。
type mockEmbedder struct {
	// 向量维度
	dims int
	// 用于测试的错误
	err error
	// 记录调用次数
	callCount int
}

// EmbedStrings 实现parser.TextEmbedder接口
func (m *mockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	m.callCount++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		vec := make([]float64, m.dims)
		for j := 0; j < len(text); j++ {
			vec[int(text[j])%m.dims]++
		}
		out[i] = vec
	}
	return out, nil
}

// GetDimensions 实现parser.TextEmbedder接口
func (m *mockEmbedder) GetDimensions() int {
	return m.dims
}

func newTestExtractor() *extractor.Extractor {
	return extractor.New(dict.Default())
}

func newTestEncoder() *parser.Encoder {
	return parser.NewEncoder(&mockEmbedder{dims: 32})
}

func newFailingEncoder() *parser.Encoder {
	return parser.NewEncoder(&mockEmbedder{dims: 32, err: errors.New("connection refused")})
}
