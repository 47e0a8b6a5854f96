package bootstrap

import (
	"subman-bot-be/internal/config"
	"subman-bot-be/internal/controller"
	"subman-bot-be/internal/gateway"
	"subman-bot-be/internal/handler"
	"subman-bot-be/internal/jobs"
	"subman-bot-be/internal/pkg/logger"
	"subman-bot-be/internal/repository/memory"
	"subman-bot-be/internal/repository/unitofwork"
	"subman-bot-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Update pipeline
	UpdateHandler *handler.UpdateHandler
	Telegram      *gateway.Telegram

	// Background Services (Exposed for main.go to run)
	NotifierService service.INotifierService
	ExpirySweepJob  *jobs.ExpirySweepJob

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Gateway
	tg := gateway.NewTelegram(cfg.Bot.APIBaseURL, cfg.Bot.Token)

	// 4. In-memory conversation store
	flowRepo := memory.NewFlowRepository()

	// 5. Services
	userService := service.NewUserService(uowFactory)
	planService := service.NewPlanService(uowFactory)
	flowService := service.NewFlowService(uowFactory, flowRepo)
	approvalService := service.NewApprovalService(uowFactory)
	codeService := service.NewCodeService(uowFactory)
	sweepService := service.NewSweepService(uowFactory, pubSub, sysLogger, cfg.Sweep.LookaheadDays)
	notifierService := service.NewNotifierService(pubSub, uowFactory, tg, sysLogger)

	// 6. Handler & Controllers
	updateHandler := handler.NewUpdateHandler(
		tg,
		userService,
		planService,
		flowService,
		approvalService,
		codeService,
		sysLogger,
		cfg.Bot.PaymentAccount,
	)
	webhookController := controller.NewWebhookController(updateHandler, sysLogger)

	// 7. Jobs
	sweepJob := jobs.NewExpirySweepJob(sweepService, sysLogger)

	return &Container{
		WebhookController: webhookController,
		UpdateHandler:     updateHandler,
		Telegram:          tg,
		NotifierService:   notifierService,
		ExpirySweepJob:    sweepJob,
		Logger:            sysLogger,
	}
}
