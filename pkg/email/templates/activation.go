package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ActivationSubject is the subject line of the account activation mail.
const ActivationSubject = "Активация аккаунта пользователя"

// ActivationParams holds the values rendered into the activation mail.
type ActivationParams struct {
	Link    string
	Product string
}

// Activation renders the account activation mail body.
func Activation(p ActivationParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		product := p.Product
		if product == "" {
			product = "NetMan"
		}
		link := templ.EscapeString(string(templ.URL(p.Link)))

		parts := []string{
			`<!DOCTYPE html><html lang="ru"><head><meta charset="utf-8" /></head><body><div>`,
			`<h1>Для активации аккаунта перейдите по <a href="`, link, `">ссылке</a></h1>`,
			`<a href="`, link, `">Ссылка для активации аккаунта</a><br />`,
			`<p>Если Вы не регистрировались в `, templ.EscapeString(product), `, то проигнорируйте данное сообщение</p>`,
			`</div></body></html>`,
		}
		for _, s := range parts {
			if _, err := io.WriteString(w, s); err != nil {
				return err
			}
		}
		return nil
	})
}
