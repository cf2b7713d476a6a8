package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Compile bool
	Apply   bool
	Merge   bool
	Edit    bool
	Schema  bool
	Overlap bool
	Eval    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compile = boolEnv("CONFIGURATOR_DEBUG_COMPILE")
	d.Apply = boolEnv("CONFIGURATOR_DEBUG_APPLY")
	d.Merge = boolEnv("CONFIGURATOR_DEBUG_MERGE")
	d.Edit = boolEnv("CONFIGURATOR_DEBUG_EDIT")
	d.Schema = boolEnv("CONFIGURATOR_DEBUG_SCHEMA")
	d.Overlap = boolEnv("CONFIGURATOR_DEBUG_OVERLAP")
	d.Eval = boolEnv("CONFIGURATOR_DEBUG_EVAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compile() bool {
	return d.Compile
}
func Apply() bool {
	return d.Apply
}
func Merge() bool {
	return d.Merge
}
func Edit() bool {
	return d.Edit
}
func Schema() bool {
	return d.Schema
}
func Overlap() bool {
	return d.Overlap
}
func Eval() bool {
	return d.Eval
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
