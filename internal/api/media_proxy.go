// Файл: montajbot/internal/api/media_proxy.go
package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"montajbot/internal/backend"
)

// MediaProxyHandler отдает вложение задания, скачивая его с бэкенда
// сервисным токеном. Ссылки бэкенда короткоживущие, а ссылка на прокси
// может спокойно жить в переписке.
func MediaProxyHandler(deps ApiDependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.ServiceBackend == nil {
			http.Error(w, "media proxy is not configured", http.StatusServiceUnavailable)
			return
		}
		attachmentID, err := strconv.ParseInt(chi.URLParam(r, "attachmentID"), 10, 64)
		if err != nil || attachmentID <= 0 {
			http.Error(w, "bad attachment id", http.StatusBadRequest)
			return
		}

		body, contentType, err := deps.ServiceBackend.DownloadAttachment(r.Context(), attachmentID)
		if err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			log.Printf("api: ошибка скачивания вложения %d: %v", attachmentID, err)
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		defer body.Close()

		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "private, max-age=3600")
		if _, err := io.Copy(w, body); err != nil {
			log.Printf("api: ошибка отдачи вложения %d: %v", attachmentID, err)
		}
	}
}
