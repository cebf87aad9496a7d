package main

import (
	"context"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/insights-server/internal/config"
	"github.com/carson-networks/insights-server/internal/logging"
	"github.com/carson-networks/insights-server/internal/notification"
	"github.com/carson-networks/insights-server/internal/scheduler"
	"github.com/carson-networks/insights-server/internal/service"
	"github.com/carson-networks/insights-server/internal/storage"
)

func main() {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("insights-server starting")

	store := storage.NewStorage()
	if envConfig.SeedDemoData {
		if err := storage.Seed(context.Background(), store); err != nil {
			logger.WithError(err).Fatal("storage.Seed")
			return
		}
		logger.Info("demo data seeded")
	}

	notifications := notification.NewStore()
	notifications.Subscribe(notification.ListenerFunc(func(snapshot []notification.Notification) {
		unread := 0
		for i := range snapshot {
			if !snapshot[i].Read {
				unread++
			}
		}
		logger.WithFields(logrus.Fields{
			"total":  len(snapshot),
			"unread": unread,
		}).Info("NotificationStore.updated")
	}))

	svc := service.NewService(store, notifications, logger, envConfig)

	alertScheduler := scheduler.New(svc.Alerts, logger, envConfig.CheckInterval)
	alertScheduler.Start()

	wg := sync.WaitGroup{}
	wg.Add(1)
	wg.Wait()
}
