package domain

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryTypes_RegistryOrder(t *testing.T) {
	types := SummaryTypes()

	require.Len(t, types, 3)
	assert.Equal(t, "concise", types[0].Name)
	assert.Equal(t, "detailed", types[1].Name)
	assert.Equal(t, "quiz", types[2].Name)
}

func TestSummaryTypes_ReturnsCopy(t *testing.T) {
	types := SummaryTypes()
	types[0].Name = "mutated"

	assert.Equal(t, "concise", SummaryTypes()[0].Name)
}

func TestSummaryTypeByName(t *testing.T) {
	st, err := SummaryTypeByName("detailed")

	require.NoError(t, err)
	assert.Equal(t, "Detailed summary", st.DisplayName)
	assert.Contains(t, st.Prompt, "DETAILED SUMMARY:")
}

func TestSummaryTypeByName_Unknown(t *testing.T) {
	_, err := SummaryTypeByName("haiku")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownSummaryType)
	assert.Contains(t, err.Error(), "haiku")
}

func TestSummaryPrompts_HaveSingleTextSlot(t *testing.T) {
	for _, st := range SummaryTypes() {
		t.Run(st.Name, func(t *testing.T) {
			assert.Equal(t, 1, strings.Count(st.Prompt, "%s"))

			rendered := fmt.Sprintf(st.Prompt, "THE TEXT")
			assert.Contains(t, rendered, "THE TEXT")
			assert.NotContains(t, rendered, "%!")
		})
	}
}
