package api

// users.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"context"

	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/transport"
)

type Users struct {
	d *transport.Dispatcher
}

func NewUsersI(i do.Injector) (*Users, error) {
	return &Users{do.MustInvoke[*transport.Dispatcher](i)}, nil
}

type Profile struct {
	ID        int64  `json:"id"`
	StudentNo string `json:"studentNo"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

func (u *Users) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := u.d.Get(ctx, "/users/me", &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (u *Users) UpdateMe(ctx context.Context, profile *Profile) error {
	return u.d.Put(ctx, "/users/me", profile, nil)
}
