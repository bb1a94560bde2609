package runtime

import "testing"

func TestConfigConnString(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "defaults for port and ssl mode",
			config: Config{Host: "localhost", User: "snapcart", Database: "snapcart"},
			want:   "host=localhost port=5432 user=snapcart password= dbname=snapcart sslmode=prefer",
		},
		{
			name: "explicit values",
			config: Config{
				Host:     "db.internal",
				Port:     5433,
				User:     "app",
				Password: "secret",
				Database: "prod",
				SSLMode:  "require",
			},
			want: "host=db.internal port=5433 user=app password=secret dbname=prod sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.connString(); got != tt.want {
				t.Errorf("connString() = %q, want %q", got, tt.want)
			}
		})
	}
}
