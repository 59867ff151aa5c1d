package app

import (
	"context"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tiendalabs/supermercado/config"
	"github.com/tiendalabs/supermercado/internal/storage"
)

type Application struct {
	appConfig *config.AppConfig
	database  *storage.Database
}

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Database() *storage.Database {
	return a.database
}

// Init sets up the global logger, connects to the document store, ensures
// indexes and seeds the default admin account.
func (a *Application) Init(ctx context.Context) error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	a.database, err = storage.Connect(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "initializing database")
	}
	zap.L().Info("database connection successful", zap.String("db", cfg.Database.Name))

	if err := a.database.EnsureIndexes(ctx); err != nil {
		zap.L().Error("failed to ensure indexes", zap.Error(err))
	}

	a.checkSuper(ctx)
	return nil
}

func (a *Application) initLogger() {
	cfg := a.appConfig

	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release releases application resources.
func (a *Application) Release() {
	if a.database != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.database.Close(ctx)
	}
	_ = zap.L().Sync()
}
