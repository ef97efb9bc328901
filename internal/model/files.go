package model

//
// files.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "time"

type StoredFile struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploaderID int64     `json:"uploaderId"`
	UploadedAt time.Time `json:"uploadedAt"`
}
