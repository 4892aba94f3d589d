package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/intake-api/internal/model"
)

func TestRenderOffer(t *testing.T) {
	body, err := RenderOffer("Jordan", []model.SelectedSlotInfo{
		{SlotID: "mon-9", Day: "Monday", Time: "9:00 AM", Clinicians: []string{"Avery"}},
		{SlotID: "tue-1", Day: "Tuesday", Time: "1:00 PM", Clinicians: []string{"Blake", "Casey"}},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Jordan,")
	assert.Contains(t, body, "Monday at 9:00 AM with Avery")
	assert.Contains(t, body, "Tuesday at 1:00 PM with Blake or Casey")
	assert.Contains(t, body, "reply to this email")
}

func TestRenderOffer_NoOffers(t *testing.T) {
	body, err := RenderOffer("Jordan", nil)
	require.NoError(t, err)
	assert.NotContains(t, body, "  - ", "no slot lines rendered")
}
