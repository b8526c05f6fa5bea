package textstore

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string
	Qty  int
}

func itemRow(i item) []string {
	return []string{i.Name, strconv.Itoa(i.Qty)}
}

func decodeItem(row []string) (item, error) {
	qty, err := strconv.Atoi(row[1])
	if err != nil {
		return item{}, &DecodeError{Field: "qty", Reason: err}
	}
	return item{Name: row[0], Qty: qty}, nil
}

func testResource(t *testing.T) Resource {
	t.Helper()
	return Resource{
		Path:   filepath.Join(t.TempDir(), "items.txt"),
		Header: []string{"name", "qty"},
	}
}

func TestEnsureCreatesHeaderOnce(t *testing.T) {
	res := testResource(t)

	require.NoError(t, res.Ensure())
	require.NoError(t, res.Ensure())

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "name,qty\n", string(data))
}

func TestLoadAllMissingFileReturnsEmpty(t *testing.T) {
	res := testResource(t)

	items, skipped, err := LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, skipped)
}

func TestLoadAllSkipsMalformedRows(t *testing.T) {
	res := testResource(t)
	content := "name,qty\napple,3\nonly-one-field\npear,not-a-number\nplum,7\n"
	require.NoError(t, os.WriteFile(res.Path, []byte(content), 0o644))

	items, skipped, err := LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "apple", Qty: 3}, {Name: "plum", Qty: 7}}, items)
	assert.Equal(t, 2, skipped)
}

func TestLoadAllSkipsRowsThatAreNotValidCSV(t *testing.T) {
	res := testResource(t)
	content := "name,qty\napple,3\nbad\"quote,4\nplum,7\n"
	require.NoError(t, os.WriteFile(res.Path, []byte(content), 0o644))

	items, skipped, err := LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "apple", Qty: 3}, {Name: "plum", Qty: 7}}, items)
	assert.Equal(t, 1, skipped)
}

func TestSaveAllRewritesInOrder(t *testing.T) {
	res := testResource(t)
	require.NoError(t, res.Ensure())
	require.NoError(t, Append(res, item{Name: "stale", Qty: 1}, itemRow))

	err := SaveAll(res, []item{{Name: "b", Qty: 2}, {Name: "a", Qty: 1}}, itemRow)
	require.NoError(t, err)

	items, skipped, err := LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []item{{Name: "b", Qty: 2}, {Name: "a", Qty: 1}}, items)
}

func TestAppendCreatesHeaderWhenMissing(t *testing.T) {
	res := testResource(t)

	require.NoError(t, Append(res, item{Name: "apple", Qty: 3}, itemRow))
	require.NoError(t, Append(res, item{Name: "pear", Qty: 5}, itemRow))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "name,qty\napple,3\npear,5\n", string(data))
}

func TestStageSaveCommitMakesRewriteVisible(t *testing.T) {
	res := testResource(t)
	require.NoError(t, SaveAll(res, []item{{Name: "old", Qty: 9}}, itemRow))

	staged, err := StageSave(res, []item{{Name: "new", Qty: 1}}, itemRow)
	require.NoError(t, err)

	// Not visible until commit.
	items, _, err := LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "old", Qty: 9}}, items)

	require.NoError(t, staged.Commit())

	items, _, err = LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "new", Qty: 1}}, items)

	_, err = os.Stat(res.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestStageSaveAbortLeavesResourceUntouched(t *testing.T) {
	res := testResource(t)
	require.NoError(t, SaveAll(res, []item{{Name: "old", Qty: 9}}, itemRow))

	staged, err := StageSave(res, []item{{Name: "new", Qty: 1}}, itemRow)
	require.NoError(t, err)
	staged.Abort()

	items, _, err := LoadAll(res, decodeItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "old", Qty: 9}}, items)

	_, err = os.Stat(res.Path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDecodeErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &DecodeError{Field: "qty", Reason: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "qty")
}
