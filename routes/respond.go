package routes

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LilVoxy/housing_macro/ETL/utils"
	"github.com/LilVoxy/housing_macro/database"
)

// writeJSON отправляет ответ в формате JSON. Ответ кодируется целиком до записи статуса,
// чтобы ошибка кодирования дала 500, а не обрезанное тело.
func writeJSON(w http.ResponseWriter, logger *utils.ETLLogger, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error("Ошибка кодирования ответа: %v", err)
		http.Error(w, "Ошибка при формировании ответа", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("Ошибка отправки ответа: %v", err)
	}
}

// writeStoreError отвечает на ошибку хранилища таблицы
func writeStoreError(w http.ResponseWriter, logger *utils.ETLLogger, err error) {
	if errors.Is(err, database.ErrNotLoaded) {
		http.Error(w, "Таблица ещё не загружена, запустите ETL", http.StatusServiceUnavailable)
		return
	}
	logger.Error("Ошибка чтения таблицы: %v", err)
	http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
}
