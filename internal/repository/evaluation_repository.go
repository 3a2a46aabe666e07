package repository

import (
	"fmt"

	"gorm.io/gorm"

	"segmetrics-server-go/internal/model"
)

// EvaluationRepository интерфейс для работы с оценками
type EvaluationRepository interface {
	Create(evaluation *model.Evaluation) error
	GetByID(id string) (*model.Evaluation, error)
	List(page, pageSize int) ([]*model.Evaluation, int64, error)
	ListByKind(kind string, page, pageSize int) ([]*model.Evaluation, int64, error)
	Delete(id string) error
	Update(evaluation *model.Evaluation) error
}

// evaluationRepository реализация EvaluationRepository
type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository создает новый instance EvaluationRepository
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{
		db: db,
	}
}

// Create создает новую оценку в базе данных
func (r *evaluationRepository) Create(evaluation *model.Evaluation) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала создаем оценку
	if err := tx.Create(evaluation).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create evaluation: %w", err)
	}

	// Затем создаем метрики
	for i := range evaluation.Scores {
		evaluation.Scores[i].ID = 0 // Обнуляем ID для auto-increment
		evaluation.Scores[i].EvaluationID = evaluation.ID

		if err := tx.Create(&evaluation.Scores[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create sample score %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID получает оценку по ID
func (r *evaluationRepository) GetByID(id string) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.db.Preload("Scores").Where("id = ?", id).First(&evaluation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("evaluation with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return &evaluation, nil
}

// List получает список оценок с пагинацией
func (r *evaluationRepository) List(page, pageSize int) ([]*model.Evaluation, int64, error) {
	return r.list("", page, pageSize)
}

// ListByKind получает список оценок заданного вида с пагинацией
func (r *evaluationRepository) ListByKind(kind string, page, pageSize int) ([]*model.Evaluation, int64, error) {
	return r.list(kind, page, pageSize)
}

// list общая выборка с опциональным фильтром по виду оценки
func (r *evaluationRepository) list(kind string, page, pageSize int) ([]*model.Evaluation, int64, error) {
	var evaluations []*model.Evaluation
	var total int64

	query := r.db.Model(&model.Evaluation{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	// Подсчитываем общее количество
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	// Получаем оценки с пагинацией
	offset := (page - 1) * pageSize
	err := query.Preload("Scores").
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&evaluations).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return evaluations, total, nil
}

// Delete удаляет оценку по ID
func (r *evaluationRepository) Delete(id string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Сначала удаляем метрики
	if err := tx.Where("evaluation_id = ?", id).Delete(&model.SampleScore{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete sample scores: %w", err)
	}

	// Затем удаляем оценку
	result := tx.Where("id = ?", id).Delete(&model.Evaluation{})
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete evaluation: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		tx.Rollback()
		return fmt.Errorf("evaluation with id %s not found", id)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update обновляет оценку
func (r *evaluationRepository) Update(evaluation *model.Evaluation) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Обновляем оценку
	if err := tx.Save(evaluation).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to update evaluation: %w", err)
	}

	// Удаляем старые метрики
	if err := tx.Where("evaluation_id = ?", evaluation.ID).Delete(&model.SampleScore{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete old sample scores: %w", err)
	}

	// Создаем новые метрики
	for i := range evaluation.Scores {
		evaluation.Scores[i].ID = 0 // Обнуляем ID для auto-increment
		evaluation.Scores[i].EvaluationID = evaluation.ID
		if err := tx.Create(&evaluation.Scores[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create sample score %d: %w", i, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
