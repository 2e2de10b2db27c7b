package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
	"github.com/xavierca1/ligue-crm/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/gemini"
	"github.com/xavierca1/ligue-crm/internal/infra/mail"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/infra/worker"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "user"),
		envOr("RABBITMQ_PASS", "password"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)
	projectRepo := database.NewProjectRepository(db, leadRepo)
	listRepo := database.NewContactListRepository(db, leadRepo)
	scriptRepo := database.NewScriptRepository(db)

	// 2. Gateways e Adapters
	ai, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		log.Fatal(err)
	}
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@ligue.app"),
	)

	myName := envOr("MY_NAME", "Alex")
	myCompany := envOr("MY_COMPANY", "Ligue")

	// 3. UseCases
	createProjectUC := usecase.NewCreateProjectUseCase(projectRepo, leadRepo, ai)
	enrichUC := usecase.NewEnrichLeadsUseCase(projectRepo, leadRepo, ai)
	manageUC := usecase.NewManageLeadsUseCase(projectRepo, leadRepo)
	exportUC := usecase.NewExportCSVUseCase(projectRepo)
	listUC := usecase.NewContactListUseCase(listRepo, projectRepo, leadRepo)
	scriptUC := usecase.NewScriptUseCase(scriptRepo, leadRepo, ai, myName, myCompany)
	reportUC := usecase.NewReportingUseCase(projectRepo, listRepo)
	sessions := usecase.NewCallSessionManager(leadRepo, ai, mailSender, myCompany)

	// 4. Workers (fila de enriquecimento + reaper de flags presas)
	enrichWorker := queue.NewWorker(rabbitMQ.Ch, enrichUC)
	go enrichWorker.Start(queue.QueueName)

	reaper := worker.NewEnrichmentReaper(db)
	go reaper.Start(ctx)

	// 5. Handlers
	projectHandler := handlers.NewProjectHandler(createProjectUC, enrichUC, exportUC, projectRepo, producer)
	leadHandler := handlers.NewLeadHandler(manageUC)
	captureHandler := handlers.NewCaptureHandler(leadRepo)
	callHandler := handlers.NewCallHandler(sessions)
	scriptHandler := handlers.NewScriptHandler(scriptUC, scriptRepo)
	listHandler := handlers.NewContactListHandler(listUC, listRepo)
	reportHandler := handlers.NewReportHandler(reportUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/capture", captureHandler.HandleCapture)

	r.Route("/projects", func(r chi.Router) {
		r.Post("/", projectHandler.HandleCreate)
		r.Get("/", projectHandler.HandleList)
		r.Get("/{projectId}", projectHandler.HandleGet)
		r.Delete("/{projectId}", projectHandler.HandleDelete)
		r.Post("/{projectId}/load-more", projectHandler.HandleLoadMore)
		r.Post("/{projectId}/enrich", projectHandler.HandleEnrich)
		r.Post("/{projectId}/enrich/async", projectHandler.HandleEnrichAsync)
		r.Get("/{projectId}/export", projectHandler.HandleExportCSV)
		r.Post("/{projectId}/leads", leadHandler.HandleAddManual)
	})

	r.Route("/leads", func(r chi.Router) {
		r.Patch("/{leadId}", leadHandler.HandleUpdate)
		r.Delete("/{leadId}", leadHandler.HandleRemove)
	})

	r.Route("/calls", func(r chi.Router) {
		r.Post("/", callHandler.HandleStart)
		r.Get("/{sessionId}", callHandler.HandleGet)
		r.Post("/{sessionId}/event", callHandler.HandleEvent)
		r.Patch("/{sessionId}", callHandler.HandleUpdate)
		r.Post("/{sessionId}/recording", callHandler.HandleRecording)
		r.Post("/{sessionId}/save", callHandler.HandleSave)
		r.Delete("/{sessionId}", callHandler.HandleCancel)
	})

	r.Route("/scripts", func(r chi.Router) {
		r.Post("/", scriptHandler.HandleCreate)
		r.Post("/generate", scriptHandler.HandleGenerate)
		r.Get("/", scriptHandler.HandleList)
		r.Put("/{scriptId}", scriptHandler.HandleUpdate)
		r.Delete("/{scriptId}", scriptHandler.HandleDelete)
		r.Get("/{scriptId}/render", scriptHandler.HandleRender)
	})

	r.Route("/lists", func(r chi.Router) {
		r.Post("/", listHandler.HandleCreate)
		r.Get("/", listHandler.HandleList)
		r.Get("/{listId}", listHandler.HandleGet)
		r.Post("/{listId}/leads", listHandler.HandleCopyLeads)
		r.Patch("/{listId}/stage", listHandler.HandleSetStage)
		r.Delete("/{listId}", listHandler.HandleDelete)
	})

	r.Get("/reports/dashboard", reportHandler.Handle)

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server Ligue CRM rodando na porta %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
