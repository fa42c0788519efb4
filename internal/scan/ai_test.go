// AngelaMos | 2026
// ai_test.go

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProducts_BareArray(t *testing.T) {
	products, err := ExtractProducts(`[
		{"name": "LED Dog Collar", "niche": "pets", "score": 87,
		 "supplier_price": 3.2, "resale_price": 19.99,
		 "rationale": "high margin, trending on social"},
		{"name": "Posture Corrector", "niche": "health", "score": 74}
	]`)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "LED Dog Collar", products[0].Name)
	assert.Equal(t, "pets", products[0].Niche)
	assert.InDelta(t, 87, products[0].Score, 0.001)
	assert.InDelta(t, 3.2, products[0].SupplierPrice, 0.001)
	assert.Equal(t, "Posture Corrector", products[1].Name)
}

func TestExtractProducts_FencedBlock(t *testing.T) {
	products, err := ExtractProducts("Here are today's winners:\n" +
		"```json\n" +
		`[{"name": "Mini Projector", "score": 91}]` + "\n" +
		"```\n" +
		"Let me know if you want more.")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mini Projector", products[0].Name)
}

func TestExtractProducts_ArrayBuriedInProse(t *testing.T) {
	products, err := ExtractProducts(
		`Sure! Based on [recent trends], my picks: ` +
			`[{"name": "Car Trunk Organizer", "rationale": "utility [A/B tested]"}] ` +
			`hope that helps`,
	)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Car Trunk Organizer", products[0].Name)
	assert.Equal(t, "utility [A/B tested]", products[0].Rationale)
}

func TestExtractProducts_ProductsWrapper(t *testing.T) {
	products, err := ExtractProducts(
		`{"products": [{"name": "Neck Massager", "score": 66}], "count": 1}`,
	)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Neck Massager", products[0].Name)
}

func TestExtractProducts_DropsNamelessEntries(t *testing.T) {
	products, err := ExtractProducts(
		`[{"score": 99}, {"name": "Keeper", "score": 50}]`,
	)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Keeper", products[0].Name)
}

func TestExtractProducts_NoJSON(t *testing.T) {
	_, err := ExtractProducts("I could not find any winning products today.")
	require.ErrorIs(t, err, ErrNoProducts)
}
