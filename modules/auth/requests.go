package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/netman-app/authkit/handler"
	authsvc "github.com/netman-app/authkit/svc/auth"
)

const dateLayout = "2006-01-02"

// msgPasswordBytes reports a password that fits the character limit but not
// the byte limit of the hash.
const msgPasswordBytes = "Максимальная длина пароля не может превышать 72 байта"

// Envelope messages, one per request kind.
const (
	msgInvalidSignUp  = "Некорректные регистрационные данные"
	msgInvalidSignIn  = "Некорректные авторизационные данные"
	msgInvalidLogout  = "Некорректные данные для выхода из системы"
	msgInvalidLink    = "Некорректные данные для активации аккаунта"
	msgInvalidRefresh = "Некорректные данные для обновления токена доступа"
	msgInvalidOAuth   = "Некорректные данные авторизации через внешний сервис"
)

type signUpRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	PhoneNum     string `json:"phone_num"`
	Location     string `json:"location"`
	DateBirthday string `json:"date_birthday"`
	Nickname     string `json:"nickname"`
	Name         string `json:"name"`
	Surname      string `json:"surname"`
}

func (r signUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Введите корректный email"), is.Email.Error("Введите корректный email")),
		validation.Field(&r.Password,
			validation.Required.Error("Минимальная длина пароля должна быть 6 символов, а максимальная длина пароля - 32 символа"),
			validation.RuneLength(6, 32).Error("Минимальная длина пароля должна быть 6 символов, а максимальная длина пароля - 32 символа"),
			validation.Length(0, authsvc.MaxPasswordBytes).Error(msgPasswordBytes),
		),
		validation.Field(&r.PhoneNum, validation.Required.Error("Некорректный номер телефона"), mobilePhone("RU", "Некорректный номер телефона")),
		validation.Field(&r.Location,
			validation.Required.Error("Максимальная длина местоположение не может быть меньше 3 символов"),
			validation.RuneLength(3, 0).Error("Максимальная длина местоположение не может быть меньше 3 символов"),
		),
		validation.Field(&r.DateBirthday, validation.Required.Error("Некорректная дата рождения"), validation.Date(dateLayout).Error("Некорректная дата рождения")),
		validation.Field(&r.Nickname, minLength(2, "Минимальная длина для никнейма равна 2 символам")...),
		validation.Field(&r.Name, minLength(2, "Минимальная длина для имени равна 2 символам")...),
		validation.Field(&r.Surname, minLength(2, "Минимальная длина для фамилии равна 2 символам")...),
	)
}

func (r signUpRequest) input() (authsvc.RegisterInput, error) {
	birthday, err := time.Parse(dateLayout, r.DateBirthday)
	if err != nil {
		return authsvc.RegisterInput{}, err
	}
	return authsvc.RegisterInput{
		Email:        r.Email,
		Password:     r.Password,
		Nickname:     r.Nickname,
		Name:         r.Name,
		Surname:      r.Surname,
		PhoneNum:     r.PhoneNum,
		Location:     r.Location,
		DateBirthday: birthday,
	}, nil
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Введите корректный email"), is.Email.Error("Введите корректный email")),
		validation.Field(&r.Password,
			validation.Required.Error("Минимальная длина пароля должна быть 6 символов"),
			validation.RuneLength(6, 0).Error("Минимальная длина пароля должна быть 6 символов"),
			validation.RuneLength(0, 32).Error("Максимальная длина пароля равна 32 символам"),
		),
	)
}

func (r signInRequest) input() authsvc.SignInInput {
	return authsvc.SignInInput{Email: r.Email, Password: r.Password}
}

type logoutRequest struct {
	UserID       int64  `json:"users_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TypeAuth     any    `json:"type_auth"`
}

func (r logoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TypeAuth, numeric("Некорректные данные для выхода из системы")),
	)
}

func (r logoutRequest) input() authsvc.LogoutInput {
	t, _ := typeAuth(r.TypeAuth)
	return authsvc.LogoutInput{
		UserID:       r.UserID,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		TypeAuth:     t,
	}
}

type activateRequest struct {
	ActivationLink string `json:"activation_link"`
}

func (r activateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ActivationLink,
			validation.Required.Error("Некорректная ссылка активации"),
			is.UUIDv4.Error("Некорректная ссылка активации"),
		),
	)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
	TypeAuth     any    `json:"type_auth"`
}

func (r refreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TypeAuth, numeric("Некорректные данные для обновления токена доступа")),
	)
}

func (r refreshRequest) input() authsvc.RefreshInput {
	t, _ := typeAuth(r.TypeAuth)
	return authsvc.RefreshInput{RefreshToken: r.RefreshToken, TypeAuth: t}
}

type oauthSignInRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

func (r oauthSignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required.Error("Отсутствует код авторизации")),
		validation.Field(&r.State, validation.Required.Error("Отсутствует состояние авторизации")),
	)
}

func (r oauthSignInRequest) input() authsvc.OAuthSignInInput {
	return authsvc.OAuthSignInInput{Code: r.Code, State: r.State}
}

type emptyRequest struct{}

func minLength(n int, msg string) []validation.Rule {
	return []validation.Rule{validation.Required.Error(msg), validation.RuneLength(n, 0).Error(msg)}
}

// mobilePhone accepts mobile numbers valid for region.
func mobilePhone(region, msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		num, err := phonenumbers.Parse(s, region)
		if err != nil ||
			!phonenumbers.IsValidNumberForRegion(num, region) ||
			phonenumbers.GetNumberType(num) != phonenumbers.MOBILE {
			return errors.New(msg)
		}
		return nil
	})
}

// numeric accepts a JSON number or a string holding an integer.
func numeric(msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if _, ok := typeAuth(value); !ok {
			return errors.New(msg)
		}
		return nil
	})
}

func typeAuth(v any) (authsvc.ProviderType, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || t < math.MinInt32 || t > math.MaxInt32 {
			return 0, false
		}
		return authsvc.ProviderType(int(t)), true
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		return authsvc.ProviderType(n), true
	default:
		return 0, false
	}
}

// invalid converts validation errors of req into the error envelope.
func invalid(msg string, req any, err error) *handler.Error {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return &handler.Error{Status: http.StatusBadRequest, Message: msg, Err: err}
	}

	values := map[string]any{}
	if raw, mErr := json.Marshal(req); mErr == nil {
		_ = json.Unmarshal(raw, &values)
	}

	paths := make([]string, 0, len(verrs))
	for path := range verrs {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fields := make([]handler.FieldError, 0, len(paths))
	for _, path := range paths {
		fields = append(fields, handler.FieldError{
			Type:     "field",
			Value:    values[path],
			Msg:      verrs[path].Error(),
			Path:     path,
			Location: "body",
		})
	}
	return &handler.Error{Status: http.StatusBadRequest, Message: msg, Errors: fields, Err: fmt.Errorf("validation: %w", err)}
}
