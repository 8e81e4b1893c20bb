package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_validate(t *testing.T) {
	tests := map[string]struct {
		cfg     Config
		wantErr bool
	}{
		"memory backend": {
			cfg:     Config{JWTSecret: "secret", Presence: PresenceConfig{Backend: PresenceBackendMemory}},
			wantErr: false,
		},
		"redis backend": {
			cfg:     Config{JWTSecret: "secret", Presence: PresenceConfig{Backend: PresenceBackendRedis}},
			wantErr: false,
		},
		"unknown backend": {
			cfg:     Config{JWTSecret: "secret", Presence: PresenceConfig{Backend: "etcd"}},
			wantErr: true,
		},
		"missing secret": {
			cfg:     Config{Presence: PresenceConfig{Backend: PresenceBackendMemory}},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.cfg.validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
