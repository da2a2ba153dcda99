package main

import (
	"stayrate/internal/tasks/handler"
	"stayrate/internal/tasks/repository"
	"stayrate/internal/tasks/service"
	"stayrate/internal/tasks/validator"
	"stayrate/pkg/app"
	"stayrate/pkg/config"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

const ServiceName = "tasks"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Tasks service")

	taskStore := storage.NewFileStore[model.Task](cfg.DataDir, storage.TasksFile)
	taskService := service.NewTaskService(
		repository.NewTaskRepository(taskStore),
		validator.NewTaskValidator(cfg.Log),
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewTaskHandler(taskService, cfg.Log))
	serverApp.Run()
}
