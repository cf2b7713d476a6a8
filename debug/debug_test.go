package debug

import "testing"

func TestBoolEnv(t *testing.T) {
	t.Setenv("CONFIGURATOR_TEST_SWITCH", "true")
	if !boolEnv("CONFIGURATOR_TEST_SWITCH") {
		t.Error("expected switch on")
	}
	t.Setenv("CONFIGURATOR_TEST_SWITCH", "nope")
	if boolEnv("CONFIGURATOR_TEST_SWITCH") {
		t.Error("expected unparsable switch off")
	}
	if boolEnv("CONFIGURATOR_TEST_UNSET") {
		t.Error("expected unset switch off")
	}
}
