package gdalkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigOptions(t *testing.T) {
	SetConfigOption("GDAL_CACHEMAX", "128")
	assert.Equal(t, "128", GetConfigOption("GDAL_CACHEMAX", ""))
	assert.Equal(t, "DEFAULT_VALUE", GetConfigOption("NON_EXISTANT_OPTION", "DEFAULT_VALUE"))
	ClearConfigOption("GDAL_CACHEMAX")
	assert.Equal(t, "DEFAULT", GetConfigOption("GDAL_CACHEMAX", "DEFAULT"))
}

func TestConfigOptionsEnv(t *testing.T) {
	t.Setenv("GDALKIT_TEST_OPTION", "from_env")
	assert.Equal(t, "from_env", GetConfigOption("GDALKIT_TEST_OPTION", "DEFAULT"))

	// explicit set overrides the environment
	SetConfigOption("GDALKIT_TEST_OPTION", "explicit")
	assert.Equal(t, "explicit", GetConfigOption("GDALKIT_TEST_OPTION", "DEFAULT"))

	// clearing exposes the environment value again
	ClearConfigOption("GDALKIT_TEST_OPTION")
	assert.Equal(t, "from_env", GetConfigOption("GDALKIT_TEST_OPTION", "DEFAULT"))
}
