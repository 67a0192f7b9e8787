package seed

import "errors"

var (
	// ErrReadSource возвращается, когда seed-файл не удалось прочитать
	ErrReadSource = errors.New("seed: failed to read source file")

	// ErrInvalidSeed возвращается при некорректном содержимом seed-файла
	// (битый JSON или отсутствие обязательных полей). Фатально на старте.
	ErrInvalidSeed = errors.New("seed: invalid seed data")
)
