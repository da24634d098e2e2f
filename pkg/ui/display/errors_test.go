// pkg/ui/display/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the structured error view

package display_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/ui/display"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	err := errors.New(errors.ErrInstallLocked, "another run holds the lock").
		WithDetail("path", "/state/install.lock").
		WithDetail("attempt", 1)

	v := display.FromError(err)
	assert.Equal(t, "INSTALL_LOCKED", v.Code)
	assert.Contains(t, v.Error, "another run holds the lock")
	assert.Equal(t, []string{"attempt: 1", "path: /state/install.lock"}, v.DetailLines())
}

func TestFromError_PlainError(t *testing.T) {
	v := display.FromError(stderrors.New("plain"))
	assert.Equal(t, display.ErrorView{Error: "plain"}, v)
	assert.Empty(t, v.DetailLines())
}
