package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

func main() {
	// Проверяем health endpoint
	fmt.Println("Проверяем health endpoint...")
	resp, err := http.Get("http://localhost:8080/api/v1/health")
	if err != nil {
		fmt.Printf("Ошибка при обращении к health endpoint: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Ошибка чтения ответа: %v\n", err)
		return
	}

	fmt.Printf("Health check ответ (статус %d):\n%s\n\n", resp.StatusCode, string(body))

	// Кодируем тестовую маску в RLE
	fmt.Println("Кодируем тестовую маску...")
	if err := testEncodeMask(); err != nil {
		fmt.Printf("Ошибка при тестировании кодирования: %v\n", err)
		return
	}

	// Оцениваем тестовую пару траекторий
	fmt.Println("Оцениваем тестовую пару траекторий...")
	if err := testEvaluateTrajectories(); err != nil {
		fmt.Printf("Ошибка при тестировании оценки траекторий: %v\n", err)
	}
}

// testEncodeMask отправляет маску 2x2 на кодирование
func testEncodeMask() error {
	payload := []byte(`{"mask": [[0, 0], [0, 255]]}`)

	resp, err := http.Post("http://localhost:8080/api/v1/masks/encode",
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	fmt.Printf("Ответ кодирования (статус %d):\n%s\n\n", resp.StatusCode, string(body))
	return nil
}

// testEvaluateTrajectories отправляет пару траекторий на оценку
func testEvaluateTrajectories() error {
	payload := []byte(`{
		"name": "demo",
		"true": [
			{"tmsp": 0, "x": 0, "y": 0},
			{"tmsp": 1, "x": 1, "y": 1},
			{"tmsp": 2, "x": 2, "y": 2},
			{"tmsp": 3, "x": 3, "y": 3}
		],
		"pred": [
			{"tmsp": 0, "x": 0, "y": 0},
			{"tmsp": 3, "x": 3, "y": 3}
		]
	}`)

	resp, err := http.Post("http://localhost:8080/api/v1/evaluate/trajectories",
		"application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	fmt.Printf("Ответ оценки траекторий (статус %d):\n%s\n\n", resp.StatusCode, string(body))
	return nil
}
