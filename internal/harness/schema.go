package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// scenarioSchema is the CUE schema every scenario document must satisfy.
// The definition is closed, so unknown fields are schema violations.
const scenarioSchema = `
#Scenario: {
	name:        string & != ""
	description: string & != ""
	run_token?:  string
	initial?: {[string]: _}
	steps: [#Step, ...#Step]
	expect?: [...#Expect]
}

#Step: {
	op:           string & != ""
	title?:       string
	description?: string
	args?: {[string]: _}
}

#Expect: {
	status: "success" | "failure" | "skipped"
	msg?:   string
	data?: {[string]: _}
}
`

// ValidateSchema checks a raw scenario document against the embedded CUE
// schema. It reports shape errors (missing required fields, wrong types,
// unknown fields, invalid status values) without decoding into the Scenario
// struct.
func ValidateSchema(doc []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("document is empty")
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(scenarioSchema).LookupPath(cue.ParsePath("#Scenario"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("internal scenario schema is invalid: %w", err)
	}

	value := ctx.Encode(raw)
	if err := value.Err(); err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}
