package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubstitutesKnownPlaceholders(t *testing.T) {
	out := Render("Hi {name}, your event is {event}", map[string]string{
		"name":  "Ada",
		"event": "Summer Gala",
	})
	assert.Equal(t, "Hi Ada, your event is Summer Gala", out)
}

func TestRenderLeavesUnknownPlaceholdersVerbatim(t *testing.T) {
	assert.Equal(t, "Hi {name}", Render("Hi {name}", map[string]string{}))
	assert.Equal(t, "Hi {name}", Render("Hi {name}", nil))

	out := Render("{known} and {unknown}", map[string]string{"known": "yes"})
	assert.Equal(t, "yes and {unknown}", out)
}

func TestRenderIsIdempotentOnSubstitutedString(t *testing.T) {
	values := map[string]string{"name": "Ada"}
	once := Render("Hi {name}", values)
	twice := Render(once, values)
	assert.Equal(t, once, twice)
}

func TestRenderReplacesEveryOccurrence(t *testing.T) {
	out := Render("{x} and {x} again", map[string]string{"x": "1"})
	assert.Equal(t, "1 and 1 again", out)
}

func TestRenderIntroSystem(t *testing.T) {
	out, err := RenderIntroSystem(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "Adaptic")
	// the introduction copy carries no placeholders
	assert.NotContains(t, out, "{")
}

func TestRenderExtractionSystemUsesMissingSentinel(t *testing.T) {
	out, err := RenderExtractionSystem(context.Background(), "", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Event name: Missing")
	assert.Contains(t, out, "Event date: Missing")
	assert.Contains(t, out, "EXTRACTION_COMPLETE:")
	assert.Contains(t, out, "DD/MM/YYYY")
}

func TestRenderExtractionSystemSubstitutesCollectedFields(t *testing.T) {
	out, err := RenderExtractionSystem(context.Background(), "Summer Gala", "25/12/2025")
	require.NoError(t, err)
	assert.Contains(t, out, "Event name: Summer Gala")
	assert.Contains(t, out, "Event date: 25/12/2025")
	assert.NotContains(t, out, "{eventName}")
	assert.NotContains(t, out, "{eventDate}")
}
