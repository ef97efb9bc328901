package router

//
// guard.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"

	"gitlab.com/kabes/go-spm/internal/store"
)

// Decision is the guard's verdict on one transition: either allow, or a
// redirect value for the caller to interpret. ReturnTo preserves the
// originally intended path when bouncing to login.
type Decision struct {
	Allowed  bool
	To       string
	ReturnTo string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(to string) Decision {
	return Decision{To: to}
}

// Guard evaluate every route transition before it commits. It hydrates
// the session store when memory is empty, so guard decisions are always
// made against the persisted state.
type Guard struct {
	store *store.SessionStore
}

func NewGuard(sstore *store.SessionStore) *Guard {
	return &Guard{store: sstore}
}

func NewGuardI(i do.Injector) (*Guard, error) {
	return NewGuard(do.MustInvoke[*store.SessionStore](i)), nil
}

func (g *Guard) Evaluate(target string) Decision {
	sess := g.store.Hydrate()

	// entering the login route while authenticated bounces to the
	// role's landing route instead
	if target == Login {
		if sess != nil && sess.Identity.Role.Valid() {
			return g.logged(target, redirect(Landing(sess.Identity.Role)))
		}

		return allow()
	}

	route, ok := Lookup(target)
	if !ok {
		return g.logged(target, redirect(Login))
	}

	if !route.RequiresAuth {
		return allow()
	}

	if sess == nil {
		return g.logged(target, Decision{To: Login, ReturnTo: target})
	}

	// incomplete onboarding: authenticated but no course selected;
	// checked before role so both roles end up joining a course first
	if target != CourseJoin && !g.store.CourseContext().Selected() {
		return g.logged(target, redirect(CourseJoin))
	}

	if route.Role != "" && route.Role != sess.Identity.Role {
		return g.logged(target, redirect(Landing(sess.Identity.Role)))
	}

	return allow()
}

func (g *Guard) logged(target string, d Decision) Decision {
	log.Logger.Debug().Str("target", target).Str("to", d.To).Msg("guard redirect")

	return d
}
