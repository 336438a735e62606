package main

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/ledgerlite/internal/core/ports/services"
	"github.com/SscSPs/ledgerlite/internal/core/services"
	"github.com/SscSPs/ledgerlite/internal/platform/config"
	"github.com/SscSPs/ledgerlite/internal/repositories"
)

// env is the storage and services shared by the ledger commands.
type env struct {
	cfg      *config.Config
	storage  *repositories.Storage
	services *portssvc.ServiceContainer
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	storage, err := repositories.NewStorage(ctx, cfg, slog.Default())
	if err != nil {
		return nil, err
	}
	sender := services.LogOTPSender{Logger: slog.Default()}
	return &env{
		cfg:      cfg,
		storage:  storage,
		services: services.NewServiceContainer(cfg, storage.Repos, sender),
	}, nil
}

func (e *env) Close() {
	e.storage.Close()
}
