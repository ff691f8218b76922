package models

// ErrorResponse - стандартная структура для ответа об ошибке в формате JSON.
// Detail совпадает с полем, которое читает фронтенд.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
