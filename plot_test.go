package stone

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSavePlotWritesFile(t *testing.T) {
	m := NewModel()
	path := filepath.Join(t.TempDir(), "fit.png")

	err := m.SavePlot(TitrationData(), truthParams, path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	t.Logf("✓ plot written: %s (%d bytes)", path, info.Size())
}

func TestSavePlotEmptyDataset(t *testing.T) {
	m := NewModel()

	err := m.SavePlot(Dataset{}, truthParams, filepath.Join(t.TempDir(), "x.png"))
	require.ErrorIs(t, err, ErrInvalidInput)
}
