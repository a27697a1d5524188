package gorm

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the relational schema for all models
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	return db.AutoMigrate(
		&UserModel{},
		&RecipeModel{},
		&CommentModel{},
		&MealPlanModel{},
	)
}
