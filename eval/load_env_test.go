package eval

import (
	"testing"

	"github.com/signadot/configurator/value"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvEnv, "")
	env, err := LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env != nil {
		t.Errorf("expected no env, got %v", env)
	}

	t.Setenv(EnvEnv, "stage: prod\nzoom: 9\n")
	env, err = LoadEnv()
	if err != nil {
		t.Fatal(err)
	}
	if env["stage"] != "prod" {
		t.Errorf("stage: got %v", env["stage"])
	}

	t.Setenv(EnvEnv, "[1, 2]")
	if _, err := LoadEnv(); err == nil {
		t.Error("expected error for a list")
	}
}

func TestVars(t *testing.T) {
	vars := Env{"zoom": int64(9), "stage": "prod", ConfigName: "shadow"}
	e, err := New(testDoc(), Vars(vars))
	if err != nil {
		t.Fatal(err)
	}
	for _, qt := range []queryTest{
		{src: "zoom", want: value.FromI64(9)},
		{src: "stage + '-' + name", want: value.FromString("prod-desk")},
		{src: "config.zoom", want: value.FromI64(3)},
	} {
		got, err := e.Eval(qt.src)
		if err != nil {
			t.Errorf("%s: %v", qt.src, err)
			continue
		}
		if !got.Equal(qt.want) {
			t.Errorf("%s: got %s want %s", qt.src, got, qt.want)
		}
	}
}
