package router

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
	"go.opentelemetry.io/otel/trace"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"
)

// statusFor 调用方参数错误归为400，其余归为500
func statusFor(err error) int {
	if errors.Is(err, types.ErrInvalidWeights) || errors.Is(err, types.ErrInvalidRequest) {
		return consts.StatusBadRequest
	}
	return consts.StatusInternalServerError
}

// respondError 输出错误响应并在当前span上记录HTTP错误
func respondError(c context.Context, ctx *app.RequestContext, err error) {
	status := statusFor(err)
	tracing.RecordHTTPError(trace.SpanFromContext(c), err, status)
	ctx.JSON(status, utils.H{"error": err.Error()})
}

// RegisterRoutes 注册API路由。
// 配置了auth.api_keys时对/api/v1启用X-API-Key鉴权，健康检查始终放行。
func RegisterRoutes(h *server.Hertz, matchHandler *handler.MatchHandler, cfg *config.Config) {
	h.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")

	if len(cfg.Auth.APIKeys) > 0 {
		allowed := make(map[string]struct{}, len(cfg.Auth.APIKeys))
		for _, key := range cfg.Auth.APIKeys {
			allowed[key] = struct{}{}
		}
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				_, ok := allowed[key]
				return ok, nil
			}),
		))
	}

	api.POST("/match", func(c context.Context, ctx *app.RequestContext) {
		var req handler.MatchRequest
		if err := ctx.BindAndValidate(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		result, err := matchHandler.HandleMatch(c, &req)
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})

	api.POST("/match/batch", func(c context.Context, ctx *app.RequestContext) {
		var req handler.BatchMatchRequest
		if err := ctx.BindAndValidate(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		result, err := matchHandler.HandleBatchMatch(c, &req)
		if err != nil {
			respondError(c, ctx, err)
			return
		}
		ctx.JSON(consts.StatusOK, result)
	})
}
