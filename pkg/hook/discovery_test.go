package hook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDiscovery_Unix(t *testing.T) {
	d := &DefaultDiscovery{goos: "linux"}

	assert.Equal(t, []string{
		filepath.Join("/tree", "post_install.sh"),
		filepath.Join("/tree", "post_install.tengo"),
	}, d.PostInstallScripts("/tree"))

	assert.Equal(t, []string{
		filepath.Join("/tree", "pre_uninstall.sh"),
		filepath.Join("/tree", "pre_uninstall.tengo"),
	}, d.PreUninstallScripts("/tree"))
}

func TestDefaultDiscovery_Windows(t *testing.T) {
	d := &DefaultDiscovery{goos: "windows"}

	assert.Equal(t, []string{
		filepath.Join("/tree", "post_install.bat"),
		filepath.Join("/tree", "post_install.tengo"),
	}, d.PostInstallScripts("/tree"))
}
