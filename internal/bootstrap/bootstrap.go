package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	authinadapter "taskdeck/internal/modules/auth/adapter/in"
	authoutadapter "taskdeck/internal/modules/auth/adapter/out"
	authservice "taskdeck/internal/modules/auth/service"
	authusecase "taskdeck/internal/modules/auth/usecase"
	chatinadapter "taskdeck/internal/modules/chat/adapter/in"
	chatoutadapter "taskdeck/internal/modules/chat/adapter/out"
	chatservice "taskdeck/internal/modules/chat/service"
	chatusecase "taskdeck/internal/modules/chat/usecase"
	tasksinadapter "taskdeck/internal/modules/tasks/adapter/in"
	tasksoutadapter "taskdeck/internal/modules/tasks/adapter/out"
	tasksservice "taskdeck/internal/modules/tasks/service"
	tasksusecase "taskdeck/internal/modules/tasks/usecase"
	"taskdeck/internal/platform/clock"
	"taskdeck/internal/platform/config"
	"taskdeck/internal/platform/id"
	"taskdeck/internal/platform/kv"
	"taskdeck/internal/platform/logging"
	"taskdeck/internal/remote"
	uiapp "taskdeck/internal/ui/app"
)

type App struct {
	AuthCLI  authinadapter.CLIHandler
	TasksCLI tasksinadapter.CLIHandler
	ChatCLI  chatinadapter.CLIHandler

	AuthUC  *authusecase.Interactor
	TasksUC *tasksusecase.Interactor
	ChatUC  *chatusecase.Interactor

	log   *zap.Logger
	store *kv.SQLiteStore
}

func New(cfg config.Config) (*App, error) {
	log, err := logging.New(cfg.Debug)
	if err != nil {
		log = logging.Nop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	store, err := kv.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	authSvc := authservice.NewAuthService()
	client := remote.NewClient(cfg.BaseURL, cfg.HTTPTimeout, authSvc, log)

	authUC := authusecase.NewInteractor(
		authSvc,
		authoutadapter.NewRemoteGateway(client),
		authoutadapter.NewKVSessionRecordStore(store),
		clk,
		log,
	)

	tasksSvc := tasksservice.NewTaskService()
	tasksUC := tasksusecase.NewInteractor(tasksSvc, tasksoutadapter.NewRemoteGateway(client), authSvc, clk, log)

	chatSvc := chatservice.NewChatService()
	chatUC := chatusecase.NewInteractor(
		chatSvc,
		chatoutadapter.NewRemoteGateway(client),
		chatoutadapter.NewKVConversationIDStore(store),
		authSvc,
		ids,
		clk,
		log,
	)

	// Logout fans out so every module forgets its server-derived cache.
	authUC.AddSessionEndedListener(tasksUC)
	authUC.AddSessionEndedListener(chatUC)

	return &App{
		AuthCLI:  authinadapter.NewCLIHandler(authUC),
		TasksCLI: tasksinadapter.NewCLIHandler(tasksUC),
		ChatCLI:  chatinadapter.NewCLIHandler(chatUC),
		AuthUC:   authUC,
		TasksUC:  tasksUC,
		ChatUC:   chatUC,
		log:      log,
		store:    store,
	}, nil
}

func (a *App) Close() error {
	_ = a.log.Sync()
	return a.store.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AuthUC, app.TasksUC, app.ChatUC)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
