package handler

import "github.com/XploitFox/private-navigation-system/internal/core/domain"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"accessToken"`
	ExpiresIn   int64          `json:"expiresIn"`
	User        domain.Profile `json:"user"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type meResponse struct {
	User domain.Profile `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}
