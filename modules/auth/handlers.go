package auth

import (
	"github.com/netman-app/authkit/handler"
	authsvc "github.com/netman-app/authkit/svc/auth"
)

func (m *Module) signUp(ctx handler.Context, req signUpRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidSignUp, req, err))
	}
	in, err := req.input()
	if err != nil {
		return handler.Fail(invalid(msgInvalidSignUp, req, err))
	}
	return result(m.svc.Register(ctx, in))
}

func (m *Module) signIn(ctx handler.Context, req signInRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidSignIn, req, err))
	}
	return result(m.svc.SignIn(ctx, req.input()))
}

func (m *Module) managementSignIn(ctx handler.Context, req signInRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidSignIn, req, err))
	}
	return result(m.svc.ManagementSignIn(ctx, req.input()))
}

func (m *Module) logout(ctx handler.Context, req logoutRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidLogout, req, err))
	}
	return result(m.svc.Logout(ctx, req.input()))
}

func (m *Module) activate(ctx handler.Context, req activateRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidLink, req, err))
	}
	return result(m.svc.Activate(ctx, req.ActivationLink))
}

func (m *Module) refresh(ctx handler.Context, req refreshRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidRefresh, req, err))
	}
	return result(m.svc.Refresh(ctx, req.input()))
}

func (m *Module) managementRefresh(ctx handler.Context, req refreshRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidRefresh, req, err))
	}
	return result(m.svc.ManagementRefresh(ctx, req.input()))
}

func (m *Module) oauthURL(ctx handler.Context, _ emptyRequest) handler.Response {
	url, err := m.svc.OAuthURL(ctx)
	if err != nil {
		return handler.Fail(err)
	}
	return handler.JSON(map[string]string{"url": url})
}

func (m *Module) oauthSignIn(ctx handler.Context, req oauthSignInRequest) handler.Response {
	return m.oauth(ctx, req, authsvc.ScopeStandard)
}

func (m *Module) managementOAuthSignIn(ctx handler.Context, req oauthSignInRequest) handler.Response {
	return m.oauth(ctx, req, authsvc.ScopeManagement)
}

func (m *Module) oauth(ctx handler.Context, req oauthSignInRequest, scope authsvc.Scope) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Fail(invalid(msgInvalidOAuth, req, err))
	}
	return result(m.svc.OAuthSignIn(ctx, req.input(), scope))
}

func (m *Module) me(ctx handler.Context, _ emptyRequest) handler.Response {
	p, ok := authsvc.PrincipalFromContext(ctx)
	if !ok {
		return handler.Fail(errUnauthorized)
	}
	return handler.JSON(p)
}

func result[T any](v T, err error) handler.Response {
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Created(v)
}
