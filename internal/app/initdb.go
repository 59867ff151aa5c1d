package app

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tiendalabs/supermercado/internal/domain"
	"github.com/tiendalabs/supermercado/internal/storage"
	"github.com/tiendalabs/supermercado/pkg/common"
)

// checkSuper seeds the default admin account on a fresh database. Every
// other user is created through the admin-gated POST /users route, so
// without this seed that route would be unreachable.
func (a *Application) checkSuper(ctx context.Context) {
	const superEmail = "admin@supermercado.io"
	const defaultPassword = "supermercado"

	var admin domain.User
	err := a.database.FindOne(ctx, domain.CollectionUsers, bson.M{"email": superEmail}, &admin)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		hash, err := common.HashPassword(defaultPassword)
		if err != nil {
			zap.L().Error("failed to hash default admin password", zap.Error(err))
			return
		}
		if _, err := a.database.Insert(ctx, domain.CollectionUsers, &domain.User{
			Email:    superEmail,
			Password: hash,
			Role:     domain.RoleAdmin,
		}); err != nil {
			zap.L().Error("failed to create default admin", zap.Error(err))
			return
		}
		zap.L().Info("initialized default admin account", zap.String("email", superEmail))
	case err != nil:
		zap.L().Error("failed to query default admin", zap.Error(err))
	}
}
