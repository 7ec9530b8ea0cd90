package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableMatchesCommand(t *testing.T) {
	_, err := command()
	assert.Equal(t, err == nil, Available())
}

func TestCopyWithoutTool(t *testing.T) {
	if Available() {
		t.Skip("clipboard tool present")
	}
	assert.ErrorIs(t, Copy("bonjour"), ErrUnavailable)
}
