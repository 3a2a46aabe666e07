package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"segmetrics-server-go/internal/mask"
	"segmetrics-server-go/internal/model"
	"segmetrics-server-go/internal/service"
	"segmetrics-server-go/internal/trajectory"
)

// EvaluationHandler обрабатывает HTTP запросы для работы с оценками
type EvaluationHandler struct {
	evalService *service.EvaluationService
	logger      *logrus.Logger
}

// NewEvaluationHandler создает новый экземпляр EvaluationHandler
func NewEvaluationHandler(evalService *service.EvaluationService, logger *logrus.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evalService: evalService,
		logger:      logger,
	}
}

// RegisterRoutes регистрирует маршруты API
func (h *EvaluationHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/masks/encode", h.EncodeMask)
		api.POST("/masks/decode", h.DecodeMask)
		api.POST("/evaluate/masks", h.EvaluateMasks)
		api.POST("/evaluate/trajectories", h.EvaluateTrajectories)
		api.GET("/evaluations", h.ListEvaluations)
		api.GET("/evaluations/:id", h.GetEvaluation)
		api.DELETE("/evaluations/:id", h.DeleteEvaluation)
	}
}

// EncodeMask кодирует пиксельную маску в RLE строку
func (h *EvaluationHandler) EncodeMask(c *gin.Context) {
	h.logger.Info("Получен запрос на кодирование маски")

	var req service.EncodeMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}

	resp, err := h.evalService.EncodeMask(req)
	if err != nil {
		h.logger.Errorf("Ошибка кодирования маски: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DecodeMask декодирует RLE строку в пиксельную маску
func (h *EvaluationHandler) DecodeMask(c *gin.Context) {
	h.logger.Info("Получен запрос на декодирование RLE строки")

	var req service.DecodeMaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}

	resp, err := h.evalService.DecodeMask(req)
	if err != nil {
		h.logger.Errorf("Ошибка декодирования RLE: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EvaluateMasks вычисляет dice score масок сегментации
func (h *EvaluationHandler) EvaluateMasks(c *gin.Context) {
	h.logger.Info("Получен запрос на оценку масок")

	var req service.EvaluateMasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}

	resp, err := h.evalService.EvaluateMasks(req)
	if err != nil {
		h.logger.Errorf("Ошибка оценки масок: %v", err)
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Оценка масок завершена успешно")
	c.JSON(http.StatusOK, resp)
}

// EvaluateTrajectories вычисляет метрики предсказанной траектории
func (h *EvaluationHandler) EvaluateTrajectories(c *gin.Context) {
	h.logger.Info("Получен запрос на оценку траекторий")

	var req service.EvaluateTrajectoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Ошибка разбора JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректное тело запроса"})
		return
	}

	resp, err := h.evalService.EvaluateTrajectories(req)
	if err != nil {
		h.logger.Errorf("Ошибка оценки траекторий: %v", err)
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Оценка траекторий завершена успешно")
	c.JSON(http.StatusOK, resp)
}

// ListEvaluations возвращает список оценок с пагинацией
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	h.logger.Info("Получен запрос на получение списка оценок")

	// Получаем параметры пагинации
	pageStr := c.DefaultQuery("page", "1")
	sizeStr := c.DefaultQuery("size", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	// Опциональный фильтр по виду оценки
	kind := c.Query("kind")
	if kind != "" && kind != model.KindMask && kind != model.KindTrajectory {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "kind должен быть mask или trajectory",
		})
		return
	}

	// Получаем оценки
	evaluations, total, err := h.evalService.ListEvaluations(kind, page, size)
	if err != nil {
		h.logger.Errorf("Ошибка получения списка оценок: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения списка оценок"})
		return
	}

	response := service.ListEvaluationsResponse{
		Evaluations: evaluations,
		Total:       total,
		Page:        page,
		Size:        size,
	}

	h.logger.Infof("Возвращено %d оценок из %d", len(evaluations), total)
	c.JSON(http.StatusOK, response)
}

// GetEvaluation возвращает оценку по ID
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	evaluationID := c.Param("id")
	h.logger.Infof("Получен запрос на получение оценки с ID: %s", evaluationID)

	evaluation, err := h.evalService.GetEvaluationByID(evaluationID)
	if err != nil {
		h.logger.Errorf("Ошибка получения оценки: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Оценка не найдена"})
		return
	}

	h.logger.Info("Оценка найдена и возвращена")
	c.JSON(http.StatusOK, evaluation)
}

// DeleteEvaluation удаляет оценку по ID
func (h *EvaluationHandler) DeleteEvaluation(c *gin.Context) {
	evaluationID := c.Param("id")
	h.logger.Infof("Получен запрос на удаление оценки с ID: %s", evaluationID)

	err := h.evalService.DeleteEvaluation(evaluationID)
	if err != nil {
		h.logger.Errorf("Ошибка удаления оценки: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка удаления оценки"})
		return
	}

	h.logger.Info("Оценка успешно удалена")
	c.JSON(http.StatusOK, gin.H{"message": "Оценка успешно удалена"})
}

// statusForError подбирает HTTP статус по виду ошибки
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrTypeMismatch),
		errors.Is(err, service.ErrBadRequest),
		errors.Is(err, mask.ErrParse),
		errors.Is(err, mask.ErrShapeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, trajectory.ErrDegenerate),
		errors.Is(err, trajectory.ErrShapeMismatch):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
