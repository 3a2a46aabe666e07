package models

// PredictRequest представляет запрос на сегментацию изображения
type PredictRequest struct {
	ImageData     []byte `json:"-"`              // Данные изображения (не сериализуем в JSON)
	ImageFilename string `json:"image_filename"` // Имя файла изображения
	ModelName     string `json:"model_name"`     // Имя модели сегментации (опционально)
}

// PredictResponse определяет структуру ответа от сервиса сегментации
type PredictResponse struct {
	Status  string `json:"status"`   // Статус выполнения
	Message string `json:"message"`  // Сообщение
	RLEMask string `json:"rle_mask"` // Предсказанная маска в формате RLE
	Height  int    `json:"height"`   // Высота маски
	Width   int    `json:"width"`    // Ширина маски
}

// HealthResponse представляет ответ проверки здоровья сервиса
type HealthResponse struct {
	Status      string `json:"status"`       // Статус сервиса (healthy/unhealthy)
	ModelLoaded bool   `json:"model_loaded"` // Загружена ли модель нейронной сети
	Version     string `json:"version"`      // Версия сервиса
}
