package model

import (
	"time"

	"gorm.io/gorm"
)

// Виды оценок
const (
	KindMask       = "mask"
	KindTrajectory = "trajectory"
)

// Evaluation представляет сохраненную оценку модели в базе данных
type Evaluation struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Kind        string `gorm:"type:varchar(32);not null;index" json:"kind"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Общая статистика
	ItemCount int     `gorm:"not null;default:0" json:"item_count"`
	MeanScore float64 `gorm:"not null;default:0" json:"mean_score"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Связь с отдельными метриками
	Scores []SampleScore `gorm:"foreignKey:EvaluationID;constraint:OnDelete:CASCADE" json:"scores"`
}

// SampleScore представляет одну метрику оценки в базе данных
type SampleScore struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	EvaluationID string  `gorm:"type:varchar(36);not null;index" json:"evaluation_id"`
	ItemIndex    int32   `gorm:"not null" json:"item_index"`
	Metric       string  `gorm:"type:varchar(32);not null" json:"metric"`
	Value        float64 `gorm:"not null" json:"value"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Обратная связь с оценкой
	Evaluation Evaluation `gorm:"foreignKey:EvaluationID;references:ID" json:"-"`
}

// TableName указывает имя таблицы для Evaluation
func (Evaluation) TableName() string {
	return "evaluations"
}

// TableName указывает имя таблицы для SampleScore
func (SampleScore) TableName() string {
	return "sample_scores"
}
