package registry

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// definitionSchema is the CUE contract every externally supplied definition
// must satisfy before it reaches the table.
const definitionSchema = `
type:     string & != ""
label:    string & != ""
icon:     string
category: "input" | "udf" | "special"
defaultProperties: {...}
rules?: [...string]
`

var (
	checkOnce   sync.Once
	checkCtx    *cue.Context
	checkSchema cue.Value
)

func compiledSchema() cue.Value {
	checkOnce.Do(func() {
		checkCtx = cuecontext.New()
		checkSchema = checkCtx.CompileString(definitionSchema)
	})
	return checkSchema
}

// checkDefinition validates a definition against the CUE contract. A nil
// return means the definition is safe to register.
func checkDefinition(d Definition) error {
	sv := compiledSchema()
	if err := sv.Err(); err != nil {
		return fmt.Errorf("definition schema: %w", err)
	}
	dv := checkCtx.Encode(d)
	if err := dv.Err(); err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	if err := sv.Unify(dv).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid definition: %w", err)
	}
	return nil
}
