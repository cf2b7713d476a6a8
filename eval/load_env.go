package eval

import (
	"fmt"
	"os"

	"github.com/signadot/configurator/codec"
	"github.com/signadot/configurator/debug"
)

const (
	EnvEnv = "CONFIGURATOR_EVAL_ENV"
)

// LoadEnv returns the variables given as a YAML or JSON object in
// $CONFIGURATOR_EVAL_ENV, or nil when it is unset.
func LoadEnv() (Env, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	v, err := codec.Decode([]byte(envEnv))
	if err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	envAny, err := ToAny(v)
	if err != nil {
		return nil, err
	}
	theEnvEnv, ok := envAny.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error decoding env $%s: wrong type %T", EnvEnv, envAny)
	}
	if debug.Eval() {
		debug.Logf("loaded env from $%s: ", EnvEnv)
		debug.LogAny(theEnvEnv)
	}
	return theEnvEnv, nil
}
