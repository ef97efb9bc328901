package api

// auth.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"context"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/model"
	"gitlab.com/kabes/go-spm/internal/transport"
)

// Auth wrap the two endpoints reachable without a session. Their payload
// is delivered directly (unwrapped) and their failures produce no
// notification; callers present the outcome themselves.
type Auth struct {
	d *transport.Dispatcher
}

func NewAuthI(i do.Injector) (*Auth, error) {
	return &Auth{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

type Credentials struct {
	StudentNo string `json:"studentNo"`
	Password  string `json:"password"`
}

type Registration struct {
	StudentNo string `json:"studentNo"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (a *Auth) Login(ctx context.Context, creds Credentials) (*model.Identity, error) {
	var identity model.Identity
	if err := a.d.Post(ctx, "/auth/login", &creds, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (a *Auth) Register(ctx context.Context, reg Registration) (*model.Identity, error) {
	var identity model.Identity
	if err := a.d.Post(ctx, "/auth/register", &reg, &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}
