package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tokenauth/internal/auth/domain"
	"github.com/aussiebroadwan/tokenauth/internal/auth/service"
	"github.com/aussiebroadwan/tokenauth/pkg/authsdk"
	"github.com/aussiebroadwan/tokenauth/pkg/httpx"
	"github.com/aussiebroadwan/tokenauth/pkg/jwtx"
)

// AuthHandler serves the /v1/auth endpoints.
type AuthHandler struct {
	LoginService *service.LoginService
	Tokens       *jwtx.TokenProvider
	Cookie       CookieConfig
	Location     *time.Location
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Authenticates an identifier/secret pair and issues an access token.
//	@Description	The refresh token is set as an HttpOnly cookie and replaces any earlier one for the same user.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"accessToken, expiredTime"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Rate limit exceeded"
//	@Failure		500		{object}	authsdk.ErrorResponse	"Internal server error"
//	@Header			200		{string}	Set-Cookie				"refreshToken=...; Path=/v1/auth; HttpOnly; SameSite=Strict"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	cred := domain.Credential{Identifier: req.Identifier, Secret: req.Secret}
	res, err := h.LoginService.Login(r.Context(), cred, r.URL.Path)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.writeTokens(w, res)
}

// HandleRefresh godoc
//
//	@Summary		Refresh tokens
//	@Description	Trades the refresh cookie for a new token pair. The bearer token identifies the user and may be expired.
//	@Description	Each refresh token can be used once.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.LoginResponse	"accessToken, expiredTime"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or superseded refresh token"
//	@Failure		500	{object}	authsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	access, ok := httpx.BearerToken(r)
	if !ok {
		authsdk.ErrInvalidGrant.WriteError(w)
		return
	}
	refresh, ok := h.Cookie.read(r)
	if !ok {
		authsdk.ErrInvalidGrant.WriteError(w)
		return
	}

	res, err := h.LoginService.Refresh(r.Context(), access, refresh, r.URL.Path)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.writeTokens(w, res)
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Forgets the caller's refresh session and expires the cookie. Access tokens stay valid until they expire.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"Logged out"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.LoginService.Logout(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.Cookie.clear(w)
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe godoc
//
//	@Summary		Current token
//	@Description	Returns the verified claims of the presented access token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MeResponse		"userId, roles, issuer, issuedAt, expiresAt"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{
		UserID:    claims.Subject,
		Roles:     claims.Roles,
		Issuer:    claims.Issuer,
		IssuedAt:  claims.Issued(),
		ExpiresAt: claims.Expiry(),
	})
}

func (h *AuthHandler) writeTokens(w http.ResponseWriter, res *domain.LoginResult) {
	h.Cookie.set(w, res.RefreshToken, h.Tokens.RefreshTTL())
	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		AccessToken: res.AccessToken,
		ExpiredTime: res.AccessExpiresAt.In(h.Location).Format(authsdk.ExpiredTimeLayout),
	})
}
