package main

//
// main.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"gitlab.com/kabes/go-spm/internal/cli"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cli.Main()
}
