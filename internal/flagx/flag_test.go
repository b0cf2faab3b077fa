package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "folio.json", "-a", ":9090"},
			allowed: ConfigFlags,
			want:    []string{"-c", "folio.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=folio.json", "-d", "postgres://db"},
			allowed: ConfigFlags,
			want:    []string{"-config=folio.json"},
		},
		{
			name:    "value is never a flag",
			args:    []string{"-c", "-config=alt.json"},
			allowed: ConfigFlags,
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "dangling flag kept",
			args:    []string{"-a", ":9090", "-c"},
			allowed: ConfigFlags,
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep their order",
			args:    []string{"-t", "15", "promote", "-d", "postgres://db", "-x", "1"},
			allowed: []string{"-d", "-t"},
			want:    []string{"-t", "15", "-d", "postgres://db"},
		},
		{
			name:    "nothing allowed present",
			args:    []string{"create-superuser", "-email=a@example.com"},
			allowed: ConfigFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestStripArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "separate value removed",
			args: []string{"-c", "conf.json", "promote", "-email", "a@example.com"},
			want: []string{"promote", "-email", "a@example.com"},
		},
		{
			name: "equals form removed",
			args: []string{"-config=conf.json", "create-superuser"},
			want: []string{"create-superuser"},
		},
		{
			name: "flag without value",
			args: []string{"promote", "-c"},
			want: []string{"promote"},
		},
		{
			name: "next flag is not swallowed",
			args: []string{"-c", "-email", "a@example.com"},
			want: []string{"-email", "a@example.com"},
		},
		{
			name: "nothing to strip",
			args: []string{"promote", "-email=a@example.com"},
			want: []string{"promote", "-email=a@example.com"},
		},
		{
			name: "empty",
			args: []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripArgs(tt.args, ConfigFlags))
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	cases := map[string]struct {
		args []string
		want string
	}{
		"short":         {[]string{"folio", "-c", "/etc/folio.json"}, "/etc/folio.json"},
		"long":          {[]string{"folio", "-a", ":9090", "-config", "/etc/folio.json"}, "/etc/folio.json"},
		"absent":        {[]string{"folio", "-a", ":9090"}, ""},
		"last one wins": {[]string{"folio", "-c", "1.json", "-config", "2.json"}, "2.json"},
		"admin subcmd":  {[]string{"folio-admin", "-c", "a.json", "promote", "-email", "x@y.z"}, "a.json"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			os.Args = tc.args
			assert.Equal(t, tc.want, JsonConfigFlags())
		})
	}
}
