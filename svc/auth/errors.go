package auth

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of any transport.
type Kind uint8

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is the error type returned by Service. Message is safe to show to
// the end user; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the bare kind sentinels below, so errors.Is(err, ErrForbidden)
// holds for every *Error of KindForbidden.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Kind sentinels, for use with errors.Is.
var (
	ErrBadRequest   = &Error{Kind: KindBadRequest}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrInternal     = &Error{Kind: KindInternal}
	ErrUnavailable  = &Error{Kind: KindUnavailable}
)

// Collaborator errors. Providers and stores return these (possibly wrapped);
// the orchestrator turns them into *Error with the matching Kind.
var (
	ErrRecordNotFound      = errors.New("auth: record not found")
	ErrDuplicate           = errors.New("auth: duplicate record")
	ErrInvalidToken        = errors.New("auth: invalid token")
	ErrInvalidCode         = errors.New("auth: invalid authorization code")
	ErrInvalidState        = errors.New("auth: invalid or expired oauth state")
	ErrProviderUnavailable = errors.New("auth: identity provider unavailable")
	ErrUnsupported         = errors.New("auth: operation not supported")
)

// User-facing messages.
const (
	msgEmailTaken          = "Пользователь с почтовым адресом %s уже существует"
	msgNicknameTaken       = "Пользователь с никнеймом %s уже существует"
	msgPhoneTaken          = "Данный мобильный телефон занят"
	msgDuplicate           = "Пользователь с такими данными уже существует"
	msgAccountNotFound     = "Аккаунта с почтовым адресом %s не существует"
	msgWrongProvider       = "Аккаунт с почтовым адресом %s должен авторизовываться через сервис %s"
	msgWrongPassword       = "Неверный пароль, повторите попытку"
	msgPasswordTooLong     = "Максимальная длина пароля не может превышать 72 байта"
	msgNotRegistered       = "Данный пользователь не зарегистрирован"
	msgGroupNoModules      = "В группе пользователей нет данных о доступных модулях"
	msgGroupNoAttributes   = "В группе пользователей нет данных о атрибутах действий"
	msgNoManagementAccess  = "Данный пользователь не имеет доступ к управляющему веб-сайту!"
	msgNotAuthenticated    = "Данный пользователь не авторизован"
	msgUnauthorized        = "Пользователь не авторизован"
	msgProviderSwitched    = "Была осуществлена модификация аутентификационных данных. Необходимо авторизоваться заново"
	msgAuthRequired        = "Необходима авторизация"
	msgActivationNotFound  = "По данной ссылке активации аккаунта не обнаружено ни одного пользователя"
	msgUnknownProvider     = "Неизвестный тип авторизации"
	msgInvalidState        = "Сессия авторизации через внешний сервис истекла, повторите попытку"
	msgInvalidCode         = "Некорректный код авторизации внешнего сервиса"
	msgProviderUnavailable = "Сервис авторизации временно недоступен, повторите попытку позже"
	msgUnsupported         = "Операция не поддерживается для данного типа авторизации"
	msgInternal            = "Внутренняя серверная ошибка"
)

func newError(kind Kind, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Kind: kind, Message: msg}
}

func badRequest(format string, args ...any) *Error {
	return newError(KindBadRequest, format, args...)
}

// KindOf reports the Kind of err. Unknown errors are internal.
func KindOf(err error) Kind {
	var e *Error
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &e):
		return e.Kind
	case errors.Is(err, ErrInvalidToken):
		return KindUnauthorized
	case errors.Is(err, ErrProviderUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrInvalidState), errors.Is(err, ErrUnsupported):
		return KindBadRequest
	default:
		return KindInternal
	}
}

// classify returns err as an *Error, keeping an existing *Error untouched
// and giving collaborator errors their kind and a user-facing message.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	kind := KindOf(err)
	msg := msgInternal
	switch {
	case errors.Is(err, ErrInvalidToken):
		msg = msgUnauthorized
	case errors.Is(err, ErrProviderUnavailable):
		msg = msgProviderUnavailable
	case errors.Is(err, ErrRecordNotFound):
		msg = msgNotRegistered
	case errors.Is(err, ErrDuplicate):
		msg = msgDuplicate
	case errors.Is(err, ErrInvalidCode):
		msg = msgInvalidCode
	case errors.Is(err, ErrInvalidState):
		msg = msgInvalidState
	case errors.Is(err, ErrUnsupported):
		msg = msgUnsupported
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}
