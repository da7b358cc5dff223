package parser

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
)

// TextEmbedder 文本向量化接口 (符合 cloudwego/eino 规范)
type TextEmbedder interface {
	// EmbedStrings 将文本转换为向量表示
	EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error)

	// GetDimensions 返回嵌入向量的维度
	GetDimensions() int
}

// Encoder 在 TextEmbedder 之上实现流水线约定的编码语义：
//   - 空文本不发起远程调用，直接返回零向量；
//   - 批量编码先过滤空串，再把零向量还原到原始位置。
type Encoder struct {
	embedder TextEmbedder
}

// NewEncoder 创建编码器包装
func NewEncoder(embedder TextEmbedder) *Encoder {
	return &Encoder{embedder: embedder}
}

// Dimensions 返回向量维度
func (e *Encoder) Dimensions() int {
	return e.embedder.GetDimensions()
}

// ZeroVector 返回全零向量，维度与嵌入模型一致
func (e *Encoder) ZeroVector() []float64 {
	return make([]float64, e.embedder.GetDimensions())
}

// Encode 将单条文本转换为向量，空白文本直接返回零向量
func (e *Encoder) Encode(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return e.ZeroVector(), nil
	}

	vectors, err := e.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return e.ZeroVector(), nil
	}
	return vectors[0], nil
}

// EncodeBatch 批量编码。空白文本不会被发送到远端，
// 结果中对应位置以零向量占位，返回切片的长度与输入一致。
func (e *Encoder) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	nonEmpty := make([]string, 0, len(texts))
	positions := make([]int, 0, len(texts))

	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			out[i] = e.ZeroVector()
			continue
		}
		nonEmpty = append(nonEmpty, text)
		positions = append(positions, i)
	}

	if len(nonEmpty) == 0 {
		return out, nil
	}

	vectors, err := e.embedder.EmbedStrings(ctx, nonEmpty)
	if err != nil {
		return nil, err
	}
	for i, vector := range vectors {
		if i < len(positions) {
			out[positions[i]] = vector
		}
	}
	return out, nil
}
