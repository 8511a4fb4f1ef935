package handler

import (
	"meetrix/internal/app/notification"
	"meetrix/internal/app/realtime"
	"meetrix/internal/app/storage"
	"meetrix/internal/configs"
)

// AppDeps bundles the shared application services the handlers need.
type AppDeps struct {
	Hub            *realtime.Hub
	Notifications  *notification.Service
	StorageService storage.StorageService
	Config         *configs.AppConfig
}
