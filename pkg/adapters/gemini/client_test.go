package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/wadjakorntonsri/etsy-shop-analyzer/pkg/ports"
)

func TestToSchema(t *testing.T) {
	in := &ports.Schema{
		Type:     "object",
		Required: []string{"tags"},
		Properties: map[string]*ports.Schema{
			"tags": {Type: "array", Items: &ports.Schema{Type: "string"}, MinItems: 13, MaxItems: 13},
		},
	}

	out := toSchema(in)

	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, []string{"tags"}, out.Required)
	tags := out.Properties["tags"]
	require.NotNil(t, tags)
	assert.Equal(t, genai.TypeArray, tags.Type)
	assert.Equal(t, genai.TypeString, tags.Items.Type)
	require.NotNil(t, tags.MinItems)
	assert.Equal(t, int64(13), *tags.MinItems)
	assert.Nil(t, toSchema(nil))
}
