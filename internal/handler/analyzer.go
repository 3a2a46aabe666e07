package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"segmetrics-server-go/internal/mask"
	"segmetrics-server-go/internal/service"
	"segmetrics-server-go/pkg/models"
)

// AnalyzerHandler обработчик для сегментации изображений внешней моделью
type AnalyzerHandler struct {
	analyzerService *service.AnalyzerService
	logger          *logrus.Logger
}

// NewAnalyzerHandler создает новый обработчик
func NewAnalyzerHandler(analyzerService *service.AnalyzerService, logger *logrus.Logger) *AnalyzerHandler {
	return &AnalyzerHandler{
		analyzerService: analyzerService,
		logger:          logger,
	}
}

// RegisterRoutes регистрирует маршруты анализатора
func (h *AnalyzerHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/analyze", h.AnalyzeSegmentation)
		api.GET("/health", h.HealthCheck)
	}
}

// AnalyzeSegmentation обрабатывает запрос на сегментацию изображения
// и оценку предсказанной маски. Принимает multipart форму: файл image,
// эталонная маска в поле truth_rle (с truth_height/truth_width) или
// файлом truth_mask (PNG/JPEG), опционально имя модели в поле model.
func (h *AnalyzerHandler) AnalyzeSegmentation(c *gin.Context) {
	h.logger.Info("Получен запрос на анализ сегментации")

	// Парсим multipart form
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil { // 32 MB max
		h.logger.Errorf("Ошибка парсинга multipart form: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ошибка парсинга формы"})
		return
	}

	// Получаем файл изображения
	imageFile, header, err := c.Request.FormFile("image")
	if err != nil {
		h.logger.Errorf("Ошибка получения файла изображения: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл изображения обязателен"})
		return
	}
	defer imageFile.Close()

	// Читаем содержимое файла изображения
	imageData, err := io.ReadAll(imageFile)
	if err != nil {
		h.logger.Errorf("Ошибка чтения файла изображения: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения файла изображения"})
		return
	}
	h.logger.Infof("Прочитано %d байт изображения из файла %s", len(imageData), header.Filename)

	// Получаем эталонную маску
	truth, err := h.truthMask(c)
	if err != nil {
		h.logger.Errorf("Ошибка получения эталонной маски: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Создаем запрос для сервиса
	request := models.PredictRequest{
		ImageData:     imageData,
		ImageFilename: header.Filename,
		ModelName:     c.PostForm("model"),
	}

	// Вызываем сервис
	response, err := h.analyzerService.AnalyzeSegmentation(request, truth)
	if err != nil {
		h.logger.Errorf("Ошибка сервиса анализа: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Внутренняя ошибка сервера"})
		return
	}

	h.logger.Info("Анализ сегментации завершен")
	c.JSON(http.StatusOK, response)
}

// HealthCheck проверяет состояние сервиса и его зависимостей
func (h *AnalyzerHandler) HealthCheck(c *gin.Context) {
	h.logger.Debug("Получен запрос проверки здоровья")

	health, err := h.analyzerService.CheckHealth()
	if err != nil {
		h.logger.Errorf("Ошибка проверки здоровья: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки состояния сервиса"})
		return
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, health)
}

// truthMask извлекает эталонную маску из multipart формы:
// либо RLE строка с формой, либо файл изображения маски
func (h *AnalyzerHandler) truthMask(c *gin.Context) (mask.Mask, error) {
	if rle := c.PostForm("truth_rle"); rle != "" {
		height, err := parseDimension(c.PostForm("truth_height"), mask.DefaultHeight)
		if err != nil {
			return mask.Mask{}, err
		}
		width, err := parseDimension(c.PostForm("truth_width"), mask.DefaultWidth)
		if err != nil {
			return mask.Mask{}, err
		}
		return mask.DecodeRLE(rle, height, width)
	}

	truthFile, _, err := c.Request.FormFile("truth_mask")
	if err != nil {
		return mask.Mask{}, fmt.Errorf("эталонная маска обязательна: поле truth_rle или файл truth_mask")
	}
	defer truthFile.Close()

	return mask.DecodeImage(truthFile, mask.DefaultThreshold)
}

// parseDimension парсит размер маски из строки формы
func parseDimension(value string, defaultValue int) (int, error) {
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}
