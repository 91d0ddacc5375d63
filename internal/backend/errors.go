package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError — ошибка, о которой сообщил бэкенд. Detail показывается
// пользователю дословно, как это делал веб-клиент.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("бэкенд вернул %d: %s", e.StatusCode, e.Detail)
}

// errorBody — форма тела ошибки: detail бывает строкой либо массивом
// объектов валидации ({"detail":[{"msg":...},...]}).
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Detail: "неизвестная ошибка сервера"}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		if len(body) > 0 {
			apiErr.Detail = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	var s string
	if json.Unmarshal(eb.Detail, &s) == nil {
		apiErr.Detail = s
		return apiErr
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(eb.Detail, &items) == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		if len(msgs) > 0 {
			apiErr.Detail = strings.Join(msgs, "; ")
		}
		return apiErr
	}

	apiErr.Detail = strings.TrimSpace(string(eb.Detail))
	return apiErr
}
