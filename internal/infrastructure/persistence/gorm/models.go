// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName     string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsActive     bool      `gorm:"default:true"`
	IsSuperuser  bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time

	// Relationships
	Recipes   []RecipeModel   `gorm:"foreignKey:OwnerID"`
	MealPlans []MealPlanModel `gorm:"foreignKey:OwnerID"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Title           string      `gorm:"type:varchar(255);not null;index"`
	Description     string      `gorm:"type:text"`
	URL             string      `gorm:"type:text"`
	FilePath        string      `gorm:"type:text"`
	Categories      StringSlice `gorm:"type:json"`
	StoreInVectorDB bool        `gorm:"column:store_in_vector_db;default:false"`
	OwnerID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time   `gorm:"index"`
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	// Relationships
	Owner    UserModel      `gorm:"foreignKey:OwnerID"`
	Comments []CommentModel `gorm:"foreignKey:RecipeID"`
}

// CommentModel represents the GORM model for recipe comments
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index"`

	// Relationships
	Recipe RecipeModel `gorm:"foreignKey:RecipeID"`
	User   UserModel   `gorm:"foreignKey:UserID"`
}

// MealPlanModel represents the GORM model for saved meal plans.
// The week's meals are stored as a JSON document so the day order the
// plan was generated with survives round trips.
type MealPlanModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Plan      PlanJSON  `gorm:"type:json;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	// Relationships
	Owner UserModel `gorm:"foreignKey:OwnerID"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// PlanJSON custom type for storing a serialized week plan
type PlanJSON []byte

// Scan implements the sql.Scanner interface
func (p *PlanJSON) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*p = append((*p)[:0], v...)
		return nil
	case string:
		*p = PlanJSON(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into PlanJSON", value)
	}
}

// Value implements the driver.Valuer interface
func (p PlanJSON) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return []byte(p), nil
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for CommentModel
func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MealPlanModel
func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (CommentModel) TableName() string {
	return "comments"
}

func (MealPlanModel) TableName() string {
	return "meal_plans"
}
