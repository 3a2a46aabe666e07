package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"segmetrics-server-go/internal/mask"
	"segmetrics-server-go/internal/model"
	"segmetrics-server-go/internal/repository"
	"segmetrics-server-go/internal/trajectory"
)

// ErrTypeMismatch аргументы true и pred имеют разный вид (маска против списка масок)
var ErrTypeMismatch = errors.New("true и pred должны иметь одинаковый тип")

// ErrBadRequest некорректные входные данные оценки
var ErrBadRequest = errors.New("некорректный запрос")

// EvaluationService сервис для вычисления и хранения оценок
type EvaluationService struct {
	evalRepo repository.EvaluationRepository
	logger   *logrus.Logger
}

// NewEvaluationService создает новый сервис оценок
func NewEvaluationService(evalRepo repository.EvaluationRepository, logger *logrus.Logger) *EvaluationService {
	return &EvaluationService{
		evalRepo: evalRepo,
		logger:   logger,
	}
}

// EncodeMask кодирует пиксельную сетку в RLE строку
func (s *EvaluationService) EncodeMask(req EncodeMaskRequest) (*EncodeMaskResponse, error) {
	m, err := gridToMask(req.Mask)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return &EncodeMaskResponse{RLE: mask.EncodeRLE(m)}, nil
}

// DecodeMask декодирует RLE строку в пиксельную сетку
func (s *EvaluationService) DecodeMask(req DecodeMaskRequest) (*DecodeMaskResponse, error) {
	height, width := req.Height, req.Width
	if height == 0 && width == 0 {
		height, width = mask.DefaultHeight, mask.DefaultWidth
	}

	m, err := mask.DecodeRLE(req.RLE, height, width)
	if err != nil {
		return nil, err
	}
	return &DecodeMaskResponse{
		Mask:   maskToGrid(m),
		Height: m.Height,
		Width:  m.Width,
	}, nil
}

// EvaluateMasks вычисляет dice score по маскам из запроса и сохраняет оценку.
// Аргументы true и pred содержат либо по одной маске, либо парные списки.
func (s *EvaluationService) EvaluateMasks(req EvaluateMasksRequest) (*MaskEvaluationResponse, error) {
	s.logger.Info("Вычисляем dice score масок")

	truthItems, truthIsList, err := parseMaskArgument(req.Truth, "true")
	if err != nil {
		return nil, err
	}
	predItems, predIsList, err := parseMaskArgument(req.Pred, "pred")
	if err != nil {
		return nil, err
	}
	if truthIsList != predIsList {
		return nil, fmt.Errorf("%w: получены %s и %s",
			ErrTypeMismatch, describeArgument(truthIsList), describeArgument(predIsList))
	}
	if len(truthItems) != len(predItems) {
		return nil, fmt.Errorf("%w: списки масок имеют разную длину: %d и %d",
			ErrBadRequest, len(truthItems), len(predItems))
	}
	if len(truthItems) == 0 {
		return nil, fmt.Errorf("%w: пустые списки масок", ErrBadRequest)
	}

	// Считаем dice для каждой пары
	scores := make([]DiceScore, len(truthItems))
	sum := 0.0
	for i := range truthItems {
		truthMask, err := itemToMask(truthItems[i])
		if err != nil {
			return nil, fmt.Errorf("%w: true[%d]: %v", ErrBadRequest, i, err)
		}
		predMask, err := itemToMask(predItems[i])
		if err != nil {
			return nil, fmt.Errorf("%w: pred[%d]: %v", ErrBadRequest, i, err)
		}

		score, err := mask.Dice(truthMask, predMask)
		if err != nil {
			return nil, fmt.Errorf("%w: пара %d: %v", ErrBadRequest, i, err)
		}
		scores[i] = DiceScore{ItemIndex: i, Value: score}
		sum += score
	}
	meanDice := sum / float64(len(scores))

	// Сохраняем оценку в базе данных
	evaluation := &model.Evaluation{
		ID:          s.GenerateEvaluationID(),
		Kind:        model.KindMask,
		Name:        evaluationName(req.Name, model.KindMask),
		Description: req.Description,
		ItemCount:   len(scores),
		MeanScore:   meanDice,
		CreatedAt:   time.Now(),
	}
	for _, score := range scores {
		evaluation.Scores = append(evaluation.Scores, model.SampleScore{
			EvaluationID: evaluation.ID,
			ItemIndex:    int32(score.ItemIndex),
			Metric:       "dice",
			Value:        score.Value,
		})
	}
	if err := s.saveEvaluation(evaluation); err != nil {
		return nil, err
	}

	s.logger.Infof("Оценка масок %s сохранена: %d пар, средний dice %.4f",
		evaluation.ID, len(scores), meanDice)

	return &MaskEvaluationResponse{
		ID:        evaluation.ID,
		Name:      evaluation.Name,
		ItemCount: len(scores),
		MeanDice:  meanDice,
		Scores:    scores,
		CreatedAt: evaluation.CreatedAt,
	}, nil
}

// EvaluateTrajectories вычисляет RMSE и MIE предсказанной траектории
// относительно эталонной и сохраняет оценку
func (s *EvaluationService) EvaluateTrajectories(req EvaluateTrajectoriesRequest) (*TrajectoryEvaluationResponse, error) {
	s.logger.Info("Вычисляем метрики траекторий")

	fields := trajectory.DefaultFields()
	if req.Fields != nil {
		fields = *req.Fields
	}

	truth, err := trajectory.FromRecords(req.Truth, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: true: %v", ErrBadRequest, err)
	}
	pred, err := trajectory.FromRecords(req.Pred, fields)
	if err != nil {
		return nil, fmt.Errorf("%w: pred: %v", ErrBadRequest, err)
	}

	scores, err := trajectory.Scores(truth, pred)
	if err != nil {
		return nil, err
	}

	// Сохраняем оценку в базе данных
	evaluation := &model.Evaluation{
		ID:          s.GenerateEvaluationID(),
		Kind:        model.KindTrajectory,
		Name:        evaluationName(req.Name, model.KindTrajectory),
		Description: req.Description,
		ItemCount:   truth.Len(),
		MeanScore:   scores[trajectory.MetricRMSE],
		CreatedAt:   time.Now(),
	}
	for _, metric := range []string{trajectory.MetricRMSE, trajectory.MetricMIE} {
		evaluation.Scores = append(evaluation.Scores, model.SampleScore{
			EvaluationID: evaluation.ID,
			ItemIndex:    0,
			Metric:       metric,
			Value:        scores[metric],
		})
	}
	if err := s.saveEvaluation(evaluation); err != nil {
		return nil, err
	}

	s.logger.Infof("Оценка траектории %s сохранена: rmse=%.4f, mie=%.4f",
		evaluation.ID, scores[trajectory.MetricRMSE], scores[trajectory.MetricMIE])

	return &TrajectoryEvaluationResponse{
		ID:        evaluation.ID,
		Name:      evaluation.Name,
		ItemCount: truth.Len(),
		Scores:    scores,
		CreatedAt: evaluation.CreatedAt,
	}, nil
}

// SaveMaskScores сохраняет готовые dice score (используется анализатором)
func (s *EvaluationService) SaveMaskScores(name, description string, scores []DiceScore) (*model.Evaluation, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: нет метрик для сохранения", ErrBadRequest)
	}

	sum := 0.0
	for _, score := range scores {
		sum += score.Value
	}

	evaluation := &model.Evaluation{
		ID:          s.GenerateEvaluationID(),
		Kind:        model.KindMask,
		Name:        evaluationName(name, model.KindMask),
		Description: description,
		ItemCount:   len(scores),
		MeanScore:   sum / float64(len(scores)),
		CreatedAt:   time.Now(),
	}
	for _, score := range scores {
		evaluation.Scores = append(evaluation.Scores, model.SampleScore{
			EvaluationID: evaluation.ID,
			ItemIndex:    int32(score.ItemIndex),
			Metric:       "dice",
			Value:        score.Value,
		})
	}
	if err := s.saveEvaluation(evaluation); err != nil {
		return nil, err
	}
	return evaluation, nil
}

// GetEvaluationByID получает оценку по ID
func (s *EvaluationService) GetEvaluationByID(evaluationID string) (*EvaluationResponse, error) {
	s.logger.Infof("Получаем оценку %s из базы данных", evaluationID)

	evaluation, err := s.evalRepo.GetByID(evaluationID)
	if err != nil {
		s.logger.Errorf("Ошибка получения оценки: %v", err)
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}

	return s.modelToResponse(evaluation), nil
}

// ListEvaluations получает список оценок с пагинацией, опционально по виду
func (s *EvaluationService) ListEvaluations(kind string, page, pageSize int) ([]EvaluationResponse, int64, error) {
	s.logger.Infof("Получаем список оценок: вид %q, страница %d, размер %d", kind, page, pageSize)

	var (
		evaluations []*model.Evaluation
		total       int64
		err         error
	)
	if kind != "" {
		evaluations, total, err = s.evalRepo.ListByKind(kind, page, pageSize)
	} else {
		evaluations, total, err = s.evalRepo.List(page, pageSize)
	}
	if err != nil {
		s.logger.Errorf("Ошибка получения списка оценок: %v", err)
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}

	responses := make([]EvaluationResponse, len(evaluations))
	for i, evaluation := range evaluations {
		responses[i] = *s.modelToResponse(evaluation)
	}

	s.logger.Infof("Получено %d оценок из %d общих", len(responses), total)
	return responses, total, nil
}

// DeleteEvaluation удаляет оценку по ID
func (s *EvaluationService) DeleteEvaluation(evaluationID string) error {
	s.logger.Infof("Удаляем оценку %s", evaluationID)

	if err := s.evalRepo.Delete(evaluationID); err != nil {
		s.logger.Errorf("Ошибка удаления оценки из БД: %v", err)
		return fmt.Errorf("failed to delete evaluation: %w", err)
	}

	s.logger.Infof("Оценка %s успешно удалена", evaluationID)
	return nil
}

// GenerateEvaluationID генерирует уникальный ID для оценки
func (s *EvaluationService) GenerateEvaluationID() string {
	return uuid.New().String()
}

// saveEvaluation сохраняет оценку в базе данных
func (s *EvaluationService) saveEvaluation(evaluation *model.Evaluation) error {
	s.logger.Infof("Сохраняем оценку в БД. Количество метрик: %d", len(evaluation.Scores))

	if err := s.evalRepo.Create(evaluation); err != nil {
		s.logger.Errorf("Ошибка сохранения оценки в БД: %v", err)
		return fmt.Errorf("failed to save evaluation to database: %w", err)
	}
	return nil
}

// modelToResponse преобразует модель базы данных в ответ API
func (s *EvaluationService) modelToResponse(evaluation *model.Evaluation) *EvaluationResponse {
	response := &EvaluationResponse{
		ID:          evaluation.ID,
		Kind:        evaluation.Kind,
		Name:        evaluation.Name,
		Description: evaluation.Description,
		ItemCount:   evaluation.ItemCount,
		MeanScore:   evaluation.MeanScore,
		CreatedAt:   evaluation.CreatedAt,
	}

	for _, score := range evaluation.Scores {
		response.Scores = append(response.Scores, ScoreInfo{
			ItemIndex: int(score.ItemIndex),
			Metric:    score.Metric,
			Value:     score.Value,
		})
	}

	return response
}

// parseMaskArgument разбирает аргумент запроса: одна маска или список масок
func parseMaskArgument(raw json.RawMessage, field string) ([]MaskItem, bool, error) {
	if len(raw) == 0 {
		return nil, false, fmt.Errorf("%w: поле %s обязательно", ErrBadRequest, field)
	}

	var items []MaskItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true, nil
	}

	var item MaskItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, false, fmt.Errorf("%w: поле %s: %v", ErrBadRequest, field, err)
	}
	return []MaskItem{item}, false, nil
}

// describeArgument описывает вид аргумента для сообщения об ошибке
func describeArgument(isList bool) string {
	if isList {
		return "список масок"
	}
	return "одна маска"
}

// itemToMask строит маску из одного из поддерживаемых представлений
func itemToMask(item MaskItem) (mask.Mask, error) {
	height, width := item.Height, item.Width
	if height == 0 && width == 0 {
		height, width = mask.DefaultHeight, mask.DefaultWidth
	}

	switch {
	case item.RLE != nil:
		return mask.DecodeRLE(*item.RLE, height, width)
	case item.Mask != nil:
		return gridToMask(item.Mask)
	case item.Polygon != nil:
		return mask.FromPolygon(item.Polygon, height, width)
	default:
		return mask.Mask{}, fmt.Errorf("маска должна быть задана полем rle, mask или polygon")
	}
}

// gridToMask преобразует строки пикселей запроса в маску
func gridToMask(grid [][]int) (mask.Mask, error) {
	rows := make([][]uint8, len(grid))
	for y, row := range grid {
		rows[y] = make([]uint8, len(row))
		for x, v := range row {
			if v != 0 {
				rows[y][x] = mask.Foreground
			}
		}
	}
	return mask.FromRows(rows)
}

// maskToGrid преобразует маску в строки пикселей ответа
func maskToGrid(m mask.Mask) [][]int {
	grid := make([][]int, m.Height)
	for y := 0; y < m.Height; y++ {
		grid[y] = make([]int, m.Width)
		for x := 0; x < m.Width; x++ {
			grid[y][x] = int(m.At(y, x))
		}
	}
	return grid
}

// evaluationName возвращает имя оценки или имя по умолчанию
func evaluationName(name, kind string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s evaluation", kind)
}
