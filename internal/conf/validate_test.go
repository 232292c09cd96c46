package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSettings() *Settings {
	settings := &Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = "arkiv.db"
	settings.WebServer.Enabled = true
	settings.WebServer.Port = "8090"
	return settings
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(s *Settings) {},
			wantErr: false,
		},
		{
			name: "both outputs enabled",
			mutate: func(s *Settings) {
				s.Output.MySQL.Enabled = true
				s.Output.MySQL.Database = "arkiv"
				s.Output.MySQL.Host = "localhost"
				s.Output.MySQL.Port = "3306"
			},
			wantErr: true,
		},
		{
			name: "no output enabled",
			mutate: func(s *Settings) {
				s.Output.SQLite.Enabled = false
			},
			wantErr: true,
		},
		{
			name: "sqlite path missing",
			mutate: func(s *Settings) {
				s.Output.SQLite.Path = ""
			},
			wantErr: true,
		},
		{
			name: "mysql without database name",
			mutate: func(s *Settings) {
				s.Output.SQLite.Enabled = false
				s.Output.MySQL.Enabled = true
				s.Output.MySQL.Host = "localhost"
				s.Output.MySQL.Port = "3306"
			},
			wantErr: true,
		},
		{
			name: "invalid web server port",
			mutate: func(s *Settings) {
				s.WebServer.Port = "not-a-port"
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			mutate: func(s *Settings) {
				s.WebServer.Port = "70000"
			},
			wantErr: true,
		},
		{
			name: "web server disabled skips port validation",
			mutate: func(s *Settings) {
				s.WebServer.Enabled = false
				s.WebServer.Port = ""
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := validSettings()
			tt.mutate(settings)

			err := ValidateSettings(settings)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("8090"))
	assert.NoError(t, validatePort("1"))
	assert.NoError(t, validatePort("65535"))
	assert.Error(t, validatePort(""))
	assert.Error(t, validatePort("0"))
	assert.Error(t, validatePort("65536"))
	assert.Error(t, validatePort("abc"))
}
