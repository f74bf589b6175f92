package service

import "errors"

// Ошибки бизнес-логики
// CRUD операции возвращают их вызывающему как есть,
// sync-операции конвертируют в структурированный SyncResult

// ErrValidation возвращается при некорректных или отсутствующих входных данных
var ErrValidation = errors.New("validation error")

// ErrNotFound возвращается, когда запрошенная запись отсутствует
var ErrNotFound = errors.New("not found")

// ErrConflict возвращается при нарушении уникальности бизнес-ключа (email/sku)
var ErrConflict = errors.New("conflict")
