package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segmetrics-server-go/internal/client"
	"segmetrics-server-go/internal/mask"
	"segmetrics-server-go/pkg/models"
)

// newPredictorStub поднимает тестовый сервис сегментации,
// отвечающий заданным JSON ответом
func newPredictorStub(t *testing.T, response models.PredictResponse) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/predict":
			require.NoError(t, r.ParseMultipartForm(32<<20))
			_, _, err := r.FormFile("image")
			require.NoError(t, err)

			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(response))
		case "/health":
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(models.HealthResponse{
				Status:      "healthy",
				ModelLoaded: true,
				Version:     "1.0.0",
			}))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestAnalyzer(baseURL string) (*AnalyzerService, *fakeEvaluationRepository) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := newFakeEvaluationRepository()
	evalService := NewEvaluationService(repo, logger)
	predictorClient := client.NewPredictorAPIClient(baseURL, 5*time.Second, logger)
	return NewAnalyzerService(predictorClient, evalService, logger), repo
}

func TestAnalyzeSegmentation(t *testing.T) {
	// Предсказание совпадает с эталоном
	server := newPredictorStub(t, models.PredictResponse{
		Status:  "success",
		RLEMask: "4 1",
		Height:  2,
		Width:   2,
	})
	defer server.Close()

	analyzer, repo := newTestAnalyzer(server.URL)

	truth, err := mask.FromRows([][]uint8{{0, 0}, {0, 255}})
	require.NoError(t, err)

	resp, err := analyzer.AnalyzeSegmentation(models.PredictRequest{
		ImageData:     []byte("not-a-real-image"),
		ImageFilename: "frame.png",
	}, truth)
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.InDelta(t, 1.0, resp.Dice, 1e-9)
	assert.Equal(t, "4 1", resp.PredictedRLE)
	require.NotEmpty(t, resp.EvaluationID)

	// Оценка сохранена
	saved, err := repo.GetByID(resp.EvaluationID)
	require.NoError(t, err)
	assert.Equal(t, "frame.png", saved.Name)
}

func TestAnalyzeSegmentationResizesPrediction(t *testing.T) {
	// Предсказание 4x4 приводится к форме эталона 2x2
	server := newPredictorStub(t, models.PredictResponse{
		Status:  "success",
		RLEMask: "1 16",
		Height:  4,
		Width:   4,
	})
	defer server.Close()

	analyzer, _ := newTestAnalyzer(server.URL)

	truth, err := mask.FromRows([][]uint8{{255, 255}, {255, 255}})
	require.NoError(t, err)

	resp, err := analyzer.AnalyzeSegmentation(models.PredictRequest{
		ImageData:     []byte("img"),
		ImageFilename: "frame.png",
	}, truth)
	require.NoError(t, err)

	assert.Equal(t, "success", resp.Status)
	assert.InDelta(t, 1.0, resp.Dice, 1e-9)
}

func TestAnalyzeSegmentationPredictorError(t *testing.T) {
	server := newPredictorStub(t, models.PredictResponse{
		Status:  "error",
		Message: "модель не загружена",
	})
	defer server.Close()

	analyzer, _ := newTestAnalyzer(server.URL)

	truth, err := mask.FromRows([][]uint8{{0, 255}})
	require.NoError(t, err)

	resp, err := analyzer.AnalyzeSegmentation(models.PredictRequest{
		ImageData:     []byte("img"),
		ImageFilename: "frame.png",
	}, truth)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "модель не загружена")
}

func TestAnalyzeSegmentationUnavailable(t *testing.T) {
	analyzer, _ := newTestAnalyzer("http://127.0.0.1:1")

	truth, err := mask.FromRows([][]uint8{{0, 255}})
	require.NoError(t, err)

	resp, err := analyzer.AnalyzeSegmentation(models.PredictRequest{
		ImageData:     []byte("img"),
		ImageFilename: "frame.png",
	}, truth)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
}

func TestAnalyzerCheckHealth(t *testing.T) {
	server := newPredictorStub(t, models.PredictResponse{})
	defer server.Close()

	analyzer, _ := newTestAnalyzer(server.URL)

	health, err := analyzer.CheckHealth()
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.ModelLoaded)
}

func TestAnalyzerCheckHealthUnavailable(t *testing.T) {
	analyzer, _ := newTestAnalyzer("http://127.0.0.1:1")

	health, err := analyzer.CheckHealth()
	require.NoError(t, err)
	assert.Equal(t, "unhealthy", health.Status)
}
