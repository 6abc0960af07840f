package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSchema_Valid(t *testing.T) {
	err := ValidateSchema([]byte(`
name: ok
description: "Shape is fine"
steps:
  - op: add
    args: { value: 1 }
expect:
  - status: success
`))

	assert.NoError(t, err)
}

func TestValidateSchema_EmptyDocument(t *testing.T) {
	err := ValidateSchema([]byte(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateSchema_NotYAML(t *testing.T) {
	err := ValidateSchema([]byte("{not: [valid"))
	require.Error(t, err)
}

func TestValidateSchema_WrongType(t *testing.T) {
	err := ValidateSchema([]byte(`
name: 42
description: "Name must be a string"
steps:
  - op: add
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestValidateSchema_EmptyStepsList(t *testing.T) {
	err := ValidateSchema([]byte(`
name: empty
description: "Steps must be non-empty"
steps: []
`))

	require.Error(t, err)
}

func TestValidateSchema_UnknownField(t *testing.T) {
	err := ValidateSchema([]byte(`
name: extra
description: "Closed schema rejects stray fields"
steps:
  - op: add
retries: 3
`))

	require.Error(t, err)
}

func TestValidateSchema_InvalidStatus(t *testing.T) {
	err := ValidateSchema([]byte(`
name: status
description: "Status must be one of the three outcomes"
steps:
  - op: add
expect:
  - status: exploded
`))

	require.Error(t, err)
}
