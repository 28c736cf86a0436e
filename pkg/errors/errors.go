package errors

import "fmt"

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrConflict   = fmt.Errorf("запись с такими данными уже существует")

	// Квитанции
	ErrSheetNotFound        = fmt.Errorf("квитанция не найдена")
	ErrSheetNotOpen         = fmt.Errorf("квитанция не находится в статусе OPEN")
	ErrSheetNotClosed       = fmt.Errorf("квитанция не находится в статусе CLOSED")
	ErrCorruptRevisionChain = fmt.Errorf("цепочка ревизий повреждена")

	// Справочные сущности
	ErrInvalidEntityName = fmt.Errorf("имя сущности не может быть пустым")
	ErrNoPendingStatus   = fmt.Errorf("ошибка конфигурации: в инвентаре не настроен статус ожидания")
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError несёт HTTP-код и сообщение для пользователя; Err — внутренняя причина для логов.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
