package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"

	"resume-match-go/internal/agent"
	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	"resume-match-go/internal/dict"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/insight"
	appCoreLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/tracing"
)

// @title Resume Match API
// @version 1.0
// @description Multi-stage resume and job description matching service.
// @BasePath /api/v1
func main() {
	var configPath string
	var listenAddr string
	pflag.StringVarP(&configPath, "config", "c", "internal/config/config.yaml", "Path to config file")
	pflag.StringVarP(&listenAddr, "listen", "l", "", "Listen address, overrides config (e.g. :8888)")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appCoreLogger.Fatal().Err(err).Msg("加载配置失败")
	}
	if listenAddr != "" {
		cfg.Server.Address = listenAddr
	}

	initLogger(cfg)
	glog.Info("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 链路追踪按配置开启，关闭时shutdown为空操作
	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		shutdownTracing, err = tracing.InitProvider(ctx, cfg.Tracing.Endpoint)
		if err != nil {
			glog.Fatalf("初始化链路追踪失败: %v", err)
		}
		glog.Info("链路追踪初始化成功")
	}

	dictionary := loadDictionary(cfg)

	// 嵌入服务未配置密钥时以nil编码器运行，
	// 语义相似度和稳定性测试降级为0，核心匹配不受影响
	var encoder *parser.Encoder
	if cfg.Embedding.APIKey != "" {
		embedder, err := parser.NewOpenAIEmbedder(cfg.Embedding.APIKey, cfg.Embedding.EmbeddingConfig, nil)
		if err != nil {
			glog.Fatalf("初始化嵌入客户端失败: %v", err)
		}
		encoder = parser.NewEncoder(embedder)
		glog.Infof("嵌入客户端初始化成功, 模型: %s", cfg.Embedding.Model)
	} else {
		glog.Warn("未配置嵌入服务API密钥，语义相似度将降级为0")
	}

	insightAnalyzer := insight.NewAnalyzer(extractor.New(dictionary))
	orchestrator := agent.NewOrchestrator(dictionary, encoder, agent.WithInsights(insightAnalyzer))
	glog.Info("匹配流水线初始化成功")

	matchHandler := handler.NewMatchHandler(cfg, orchestrator)

	tracer, tracerCfg := hertztracing.NewServerTracer()
	h := server.New(
		tracer,
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(hertztracing.ServerMiddleware(tracerCfg))
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, matchHandler, cfg)
	glog.Info("HTTP路由注册成功")

	glog.Infof("HTTP服务器启动中，监听地址: %s", cfg.Server.Address)
	go func() {
		if err := h.Run(); err != nil {
			glog.Fatalf("启动HTTP服务器失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	glog.Info("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		glog.Errorf("服务器关闭失败: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		glog.Errorf("链路追踪关闭失败: %v", err)
	}
	glog.Info("优雅退出完成")
}

// initLogger 初始化zerolog并把Hertz的日志桥接到同一输出
func initLogger(cfg *config.Config) {
	appCoreLogger.Init(appCoreLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	appCoreLogger.Logger = appCoreLogger.Logger.With().
		Str("app", "resume-match-go").
		Logger()

	glog.SetLogger(hertzadapter.From(appCoreLogger.Logger))
}

// loadDictionary 加载技能词典，未配置路径或加载失败时退回内置默认词表
func loadDictionary(cfg *config.Config) *dict.Dictionary {
	if cfg.Dictionary.Path == "" {
		glog.Info("使用内置技能词典")
		return dict.Default()
	}

	dictionary, err := dict.Load(cfg.Dictionary.Path)
	if err != nil {
		glog.Warnf("加载技能词典失败 (%s): %v, 使用内置默认词表", cfg.Dictionary.Path, err)
		return dict.Default()
	}
	glog.Infof("技能词典加载成功: %s", cfg.Dictionary.Path)
	return dictionary
}
