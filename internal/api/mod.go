// Package api provide typed wrappers over the request dispatcher for the
// SPM backend's REST surface. No wrapper talks to the network itself;
// everything goes through transport.Dispatcher.
package api

//
// mod.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"github.com/samber/do/v2"
)

var Package = do.Package(
	do.Lazy(NewAuthI),
	do.Lazy(NewUsersI),
	do.Lazy(NewCoursesI),
	do.Lazy(NewAnnouncementsI),
	do.Lazy(NewAssignmentsI),
	do.Lazy(NewAttendanceI),
	do.Lazy(NewDiscussionsI),
	do.Lazy(NewFilesI),
)
