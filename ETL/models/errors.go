package models

import "errors"

var (
	// ErrMissingColumn в исходной таблице нет обязательного столбца
	ErrMissingColumn = errors.New("отсутствует обязательный столбец")

	// ErrEmptySource файл не содержит даже строки заголовка
	ErrEmptySource = errors.New("пустой источник данных")
)
