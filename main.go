package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/odm"
	"github.com/ollama/ollama/api"
	"go.mongodb.org/mongo-driver/v2/mongo"
	temporalClient "go.temporal.io/sdk/client"
	temporalWorker "go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/Vasudevshetty/studysyncs/agent"
	"github.com/Vasudevshetty/studysyncs/appconfig"
	"github.com/Vasudevshetty/studysyncs/db"
	"github.com/Vasudevshetty/studysyncs/index"
	"github.com/Vasudevshetty/studysyncs/llm"
	"github.com/Vasudevshetty/studysyncs/services"
	"github.com/Vasudevshetty/studysyncs/transcript"
	"github.com/Vasudevshetty/studysyncs/workers"
)

func main() {
	dotenv.LoadEnv()

	ccfg := &appconfig.AppConfig{}
	if err := config.LoadConfig("config.ini", ccfg); err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	gdb, err := db.Open(ccfg.SqlitePath)
	if err != nil {
		logger.Fatal("Failed to open sqlite database", zap.Error(err))
	}

	mongoClient, err := odm.GetClient()
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ollamaClient, err := api.ClientFromEnvironment()
	if err != nil {
		logger.Fatal("Failed to create Ollama client", zap.Error(err))
	}

	llmClient, err := buildLLMClient(ccfg)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	embedder := llm.NewOllamaEmbedder(ollamaClient)

	sessionStore := db.NewSessionStore(gdb)
	questionStore := db.NewQuestionStore(gdb)
	assessmentStore := db.NewAssessmentStore(gdb)

	provider := index.NewProvider(mongoClient, embedder)
	orchestrator := agent.NewOrchestrator(
		sessionStore,
		agent.NewContextualizer(llmClient),
		agent.NewAnswerer(provider, llmClient),
	)

	router := services.NewRouter(services.Handlers{
		Chat:       services.NewChatHandler(orchestrator),
		Session:    services.NewSessionHandler(sessionStore),
		Quiz:       services.NewQuizHandler(llmClient, transcript.NewFetcher(), questionStore),
		Assessment: services.NewAssessmentHandler(agent.NewClassifier(llmClient), assessmentStore),
		Guidance:   services.NewGuidanceHandler(llmClient),
	}, ccfg.AllowedOrigins)

	ctx := getCancellableContext()

	if ccfg.TemporalHostPort != "" {
		stopWorker, err := startIndexWorker(ccfg, mongoClient, embedder)
		if err != nil {
			logger.Fatal("Failed to start temporal worker", zap.Error(err))
		}
		defer stopWorker()
	}

	srv := &http.Server{Addr: ccfg.HTTPPort, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving HTTP", zap.String("port", ccfg.HTTPPort))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}
}

func buildLLMClient(ccfg *appconfig.AppConfig) (llm.LLMClient, error) {
	switch ccfg.LLMProvider {
	case "anthropic":
		return llm.NewAnthropicClient(ccfg.LLMModel)
	default:
		return llm.NewGroqClient(ccfg.LLMModel)
	}
}

func startIndexWorker(ccfg *appconfig.AppConfig, mongoClient *mongo.Client, embedder llm.Embedder) (func(), error) {
	c, err := temporalClient.Dial(temporalClient.Options{HostPort: ccfg.TemporalHostPort})
	if err != nil {
		return nil, err
	}

	w := temporalWorker.New(c, ccfg.TemporalTaskQueue, temporalWorker.Options{})
	w.RegisterWorkflow(workers.IndexSubjectWorkflow)
	w.RegisterActivity(workers.NewActivities(mongoClient, embedder))

	if err := w.Start(); err != nil {
		c.Close()
		return nil, err
	}

	logger.Info("Temporal worker started", zap.String("taskQueue", ccfg.TemporalTaskQueue))
	return func() {
		w.Stop()
		c.Close()
	}, nil
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
