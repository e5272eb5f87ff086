package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrEmptyBody возвращается при пустом теле запроса
var ErrEmptyBody = errors.New("empty request body")

const maxBodyBytes = 1 << 20 // 1 MB

// DecodeJSON декодирует JSON тело запроса в dst.
// Неизвестные поля считаются ошибкой клиента.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return err
	}

	return nil
}
