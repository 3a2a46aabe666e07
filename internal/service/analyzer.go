package service

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"segmetrics-server-go/internal/client"
	"segmetrics-server-go/internal/mask"
	"segmetrics-server-go/pkg/models"
)

// AnalyzerService сервис для сегментации изображений внешней моделью
// и оценки качества предсказанных масок
type AnalyzerService struct {
	predictorClient *client.PredictorAPIClient
	evalService     *EvaluationService
	logger          *logrus.Logger
}

// NewAnalyzerService создает новый сервис анализатора
func NewAnalyzerService(predictorClient *client.PredictorAPIClient, evalService *EvaluationService, logger *logrus.Logger) *AnalyzerService {
	return &AnalyzerService{
		predictorClient: predictorClient,
		evalService:     evalService,
		logger:          logger,
	}
}

// AnalyzeSegmentation отправляет изображение в сервис сегментации,
// сравнивает предсказанную маску с эталонной и сохраняет оценку
func (s *AnalyzerService) AnalyzeSegmentation(request models.PredictRequest, truth mask.Mask) (*AnalyzeResponse, error) {
	s.logger.Infof("Начинаем анализ сегментации для изображения %s", request.ImageFilename)

	startTime := time.Now()

	// 1. Отправляем запрос в сервис сегментации для получения предсказанной маски
	s.logger.Info("Отправляем изображение в сервис сегментации")
	predictorResp, err := s.predictorClient.Predict(request)
	if err != nil {
		s.logger.Errorf("Ошибка при обращении к сервису сегментации: %v", err)
		return &AnalyzeResponse{
			Status:  "error",
			Message: fmt.Sprintf("Ошибка сегментации нейронной сетью: %v", err),
		}, nil
	}

	if predictorResp.Status != "success" {
		s.logger.Errorf("Сервис сегментации вернул ошибку: %s", predictorResp.Message)
		return &AnalyzeResponse{
			Status:  "error",
			Message: fmt.Sprintf("Ошибка от сервиса сегментации: %s", predictorResp.Message),
		}, nil
	}

	// 2. Декодируем предсказанную маску и считаем метрики
	return s.processEvaluation(request, predictorResp, truth, startTime)
}

// processEvaluation декодирует предсказанную RLE маску, приводит ее
// к форме эталона и вычисляет dice score
func (s *AnalyzerService) processEvaluation(request models.PredictRequest, predictorResp *models.PredictResponse, truth mask.Mask, startTime time.Time) (*AnalyzeResponse, error) {
	height, width := predictorResp.Height, predictorResp.Width
	if height == 0 && width == 0 {
		height, width = truth.Height, truth.Width
	}

	pred, err := mask.DecodeRLE(predictorResp.RLEMask, height, width)
	if err != nil {
		s.logger.Errorf("Ошибка декодирования предсказанной маски: %v", err)
		return &AnalyzeResponse{
			Status:  "error",
			Message: fmt.Sprintf("Некорректная RLE маска от сервиса сегментации: %v", err),
		}, nil
	}

	// Приводим предсказание к форме эталона
	if !pred.SameShape(truth) {
		s.logger.Infof("Приводим предсказанную маску %dx%d к форме эталона %dx%d",
			pred.Height, pred.Width, truth.Height, truth.Width)
		pred, err = mask.Resize(pred, truth.Height, truth.Width)
		if err != nil {
			return nil, fmt.Errorf("ошибка приведения маски к форме эталона: %w", err)
		}
	}

	score, err := mask.Dice(truth, pred)
	if err != nil {
		return nil, fmt.Errorf("ошибка вычисления dice score: %w", err)
	}

	// Сохраняем оценку
	evaluation, err := s.evalService.SaveMaskScores(
		request.ImageFilename,
		fmt.Sprintf("Сегментация изображения %s моделью", request.ImageFilename),
		[]DiceScore{{ItemIndex: 0, Value: score}},
	)
	if err != nil {
		return nil, err
	}

	processingTime := time.Since(startTime)
	s.logger.Infof("Анализ завершен за %v. Dice score: %.4f", processingTime, score)

	return &AnalyzeResponse{
		Status:       "success",
		Message:      "Анализ сегментации успешно завершен",
		EvaluationID: evaluation.ID,
		Dice:         score,
		PredictedRLE: mask.EncodeRLE(pred),
	}, nil
}

// CheckHealth проверяет состояние сервиса и его зависимостей
func (s *AnalyzerService) CheckHealth() (*models.HealthResponse, error) {
	s.logger.Debug("Проверяем состояние сервиса анализатора")

	// Проверяем состояние сервиса сегментации
	predictorHealth, err := s.predictorClient.CheckHealth()
	if err != nil {
		s.logger.Errorf("Сервис сегментации недоступен: %v", err)
		return &models.HealthResponse{
			Status:      "unhealthy",
			ModelLoaded: false,
			Version:     "1.0.0",
		}, nil
	}

	// Если сервис сегментации здоров, возвращаем его статус
	return predictorHealth, nil
}
