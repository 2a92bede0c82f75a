package slack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductConfigStoreGet(t *testing.T) {
	store := NewProductConfigStore(
		[]ProductConfig{
			{
				Product:       "openshift",
				ErrorPatterns: []string{"error", "failed"},
			},
		},
	)
	testCases := []struct {
		name       string
		product    string
		assertions func(ProductConfig, error)
	}{
		{
			name:    "product not found",
			product: "ANSIBLE",
			assertions: func(_ ProductConfig, err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "no configuration found for product")
			},
		},
		{
			name:    "lookup is case-insensitive",
			product: "OpenShift",
			assertions: func(config ProductConfig, err error) {
				require.NoError(t, err)
				require.Equal(t, "openshift", config.Product)
				require.Equal(t, []string{"error", "failed"}, config.ErrorPatterns)
			},
		},
		{
			name:    "lookup with uppercased key",
			product: "OPENSHIFT",
			assertions: func(config ProductConfig, err error) {
				require.NoError(t, err)
				require.Equal(t, "openshift", config.Product)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			config, err := store.Get(testCase.product)
			testCase.assertions(config, err)
		})
	}
}
