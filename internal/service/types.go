package service

import (
	"encoding/json"
	"time"

	"segmetrics-server-go/internal/mask"
	"segmetrics-server-go/internal/trajectory"
)

// MaskItem представляет одну маску в запросе. Маска задается ровно одним
// из способов: RLE строка, пиксельная сетка или полигон разметки.
type MaskItem struct {
	RLE     *string      `json:"rle,omitempty"`     // RLE строка
	Mask    [][]int      `json:"mask,omitempty"`    // Строки пикселей (0 - фон, не 0 - объект)
	Polygon []mask.Point `json:"polygon,omitempty"` // Вершины полигона
	Height  int          `json:"height,omitempty"`  // Высота (для rle и polygon, по умолчанию 512)
	Width   int          `json:"width,omitempty"`   // Ширина (для rle и polygon, по умолчанию 512)
}

// EvaluateMasksRequest запрос на оценку масок сегментации.
// Поля true и pred содержат либо одну маску, либо парные списки масок.
type EvaluateMasksRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Truth       json.RawMessage `json:"true"`
	Pred        json.RawMessage `json:"pred"`
}

// DiceScore dice score одной пары масок
type DiceScore struct {
	ItemIndex int     `json:"item_index"`
	Value     float64 `json:"value"`
}

// MaskEvaluationResponse результат оценки масок
type MaskEvaluationResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	ItemCount int         `json:"item_count"`
	MeanDice  float64     `json:"mean_dice"`
	Scores    []DiceScore `json:"scores"`
	CreatedAt time.Time   `json:"created_at"`
}

// EvaluateTrajectoriesRequest запрос на оценку предсказанной траектории.
// Записи - табличные строки с полями временной метки и двух координат,
// имена полей настраиваются (по умолчанию tmsp, x, y).
type EvaluateTrajectoriesRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Truth       []map[string]float64 `json:"true"`
	Pred        []map[string]float64 `json:"pred"`
	Fields      *trajectory.Fields   `json:"fields,omitempty"`
}

// TrajectoryEvaluationResponse результат оценки траектории
type TrajectoryEvaluationResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ItemCount int                `json:"item_count"`
	Scores    map[string]float64 `json:"scores"`
	CreatedAt time.Time          `json:"created_at"`
}

// ScoreInfo одна сохраненная метрика оценки
type ScoreInfo struct {
	ItemIndex int     `json:"item_index"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
}

// EvaluationResponse ответ с информацией об оценке
type EvaluationResponse struct {
	ID          string      `json:"id"`
	Kind        string      `json:"kind"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	ItemCount   int         `json:"item_count"`
	MeanScore   float64     `json:"mean_score"`
	Scores      []ScoreInfo `json:"scores"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ListEvaluationsResponse ответ со списком оценок
type ListEvaluationsResponse struct {
	Evaluations []EvaluationResponse `json:"evaluations"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	Size        int                  `json:"size"`
}

// EncodeMaskRequest запрос на кодирование маски в RLE
type EncodeMaskRequest struct {
	Mask [][]int `json:"mask"`
}

// EncodeMaskResponse ответ с RLE строкой
type EncodeMaskResponse struct {
	RLE string `json:"rle"`
}

// DecodeMaskRequest запрос на декодирование RLE строки
type DecodeMaskRequest struct {
	RLE    string `json:"rle"`
	Height int    `json:"height"` // По умолчанию 512
	Width  int    `json:"width"`  // По умолчанию 512
}

// DecodeMaskResponse ответ с декодированной маской
type DecodeMaskResponse struct {
	Mask   [][]int `json:"mask"`
	Height int     `json:"height"`
	Width  int     `json:"width"`
}

// AnalyzeResponse результат сегментации изображения внешней моделью
// и сравнения с эталонной маской
type AnalyzeResponse struct {
	Status       string  `json:"status"`  // Статус выполнения (success/error)
	Message      string  `json:"message"` // Сообщение о результате
	EvaluationID string  `json:"evaluation_id,omitempty"`
	Dice         float64 `json:"dice"`
	PredictedRLE string  `json:"predicted_rle,omitempty"`
}
