package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arffFile = `@relation outliers

@attribute f0 real
@attribute f1 real
@attribute id real
@attribute outlier {no,yes}

@data
1.0,2.0,1,no
1.1,2.1,2,no
9.0,9.0,3,yes
1.2,1.9,4,no
`

const csvFile = `f0,f1,outlier
1.0,2.0,0
1.1,2.1,0
9.0,9.0,1
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestImportARFF(t *testing.T) {

	set, err := ImportARFF(write(t, "outliers.arff", arffFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"f0", "f1"}, set.Attributes)
	assert.Equal(t, 4, len(set.X))
	assert.Equal(t, []int{0, 0, 1, 0}, set.Y)
	assert.Equal(t, 1, set.Outliers())
	// the id column is dropped
	assert.Equal(t, 2, len(set.X[0]))
	assert.Equal(t, []float64{9.0, 9.0}, set.X[2])

}

func TestImportCSV(t *testing.T) {

	set, err := ImportCSV(write(t, "outliers.csv", csvFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"f0", "f1"}, set.Attributes)
	assert.Equal(t, 3, len(set.X))
	assert.Equal(t, []int{0, 0, 1}, set.Y)

}

func TestImport_MissingFile(t *testing.T) {

	_, err := ImportARFF("does/not/exist.arff")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = ImportCSV("does/not/exist.csv")
	assert.True(t, errors.Is(err, ErrNotFound))

}

func TestImport_BadLabel(t *testing.T) {

	path := write(t, "bad.csv", "f0,outlier\n1.0,maybe\n2.0,yes\n")

	_, err := ImportCSV(path)
	assert.True(t, errors.Is(err, ErrBadLabel))

}
