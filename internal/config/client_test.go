package config

//
// client_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"testing"

	"gitlab.com/kabes/go-spm/internal/assert"
)

func TestClientConfValidate(t *testing.T) {
	tests := []struct {
		name    string
		conf    ClientConf
		wanterr bool
	}{
		{"valid", ClientConf{BaseURL: "http://localhost:8080/api", Store: "file"}, false},
		{"empty base url", ClientConf{Store: "file"}, true},
		{"invalid base url", ClientConf{BaseURL: "::::", Store: "file"}, true},
		{"relative base url", ClientConf{BaseURL: "localhost/api", Store: "file"}, true},
		{"unknown store", ClientConf{BaseURL: "http://localhost/api", Store: "redis"}, true},
		{"default store", ClientConf{BaseURL: "http://localhost/api"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if tt.wanterr {
				assert.Err(t, err)
			} else {
				assert.NoErr(t, err)
			}
		})
	}
}

func TestClientConfDefaults(t *testing.T) {
	conf := ClientConf{BaseURL: "http://localhost:8080/api"}
	assert.NoErr(t, conf.Validate())
	assert.Equal(t, conf.Store, "file")
	assert.NotEqual(t, conf.StatePath, "")
}
