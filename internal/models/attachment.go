package models

// Attachment — файл, привязанный к заданию или отчету. PresignedURL
// короткоживущий, поэтому бот отдает медиа через собственный прокси,
// а не шлет эту ссылку в чат напрямую.
type Attachment struct {
	ID           int64  `json:"id"`
	StorageKey   string `json:"storage_key"`
	ThumbKey     string `json:"thumb_key,omitempty"`
	PresignedURL string `json:"presigned_url,omitempty"`
}
