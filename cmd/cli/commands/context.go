package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/internal/config"
	"github.com/ANTONISMICHAILIDIS/Nurse-schedule/pkg/clients/rosterclient"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	NurseClient *rosterclient.Client
	Logger      *zap.Logger
	Ctx         context.Context
}
