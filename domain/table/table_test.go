package table

import (
	"testing"

	"churnprep/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerFixture(t *testing.T) *Table {
	t.Helper()
	tbl := New([]string{"customerID", "Contract", "tenure", "Churn"})
	require.NoError(t, tbl.Append([]string{"c1", "Month-to-month", "2", "1"}))
	require.NoError(t, tbl.Append([]string{"c2", "Two year", "60", "0"}))
	require.NoError(t, tbl.Append([]string{"c3", "One year", "24", "0"}))
	return tbl
}

func TestAppend_WidthMismatch(t *testing.T) {
	tbl := New([]string{"a", "b"})
	err := tbl.Append([]string{"1"})
	require.Error(t, err)
	assert.True(t, core.IsLoadError(err))
}

func TestColumnAccess(t *testing.T) {
	tbl := customerFixture(t)

	values, err := tbl.Column("Contract")
	require.NoError(t, err)
	assert.Equal(t, []string{"Month-to-month", "Two year", "One year"}, values)

	_, err = tbl.Column("nope")
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))
}

func TestSetColumn(t *testing.T) {
	tbl := customerFixture(t)
	require.NoError(t, tbl.SetColumn("tenure", []string{"1", "2", "3"}))

	values, err := tbl.Column("tenure")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, values)

	err = tbl.SetColumn("tenure", []string{"1"})
	require.Error(t, err)
}

func TestDropColumn(t *testing.T) {
	tbl := customerFixture(t)
	dropped, err := tbl.DropColumn("customerID")
	require.NoError(t, err)

	assert.Equal(t, []string{"Contract", "tenure", "Churn"}, dropped.Headers)
	assert.Equal(t, []string{"Month-to-month", "2", "1"}, dropped.Rows[0])

	// Original table keeps its shape
	assert.Equal(t, 4, tbl.NumColumns())
}

func TestSelectRows(t *testing.T) {
	tbl := customerFixture(t)
	selected := tbl.SelectRows([]int{2, 0})

	assert.Equal(t, 2, selected.NumRows())
	assert.Equal(t, "c3", selected.Rows[0][0])
	assert.Equal(t, "c1", selected.Rows[1][0])
}

func TestSplitLabel(t *testing.T) {
	tbl := customerFixture(t)
	features, labels, err := tbl.SplitLabel("Churn")
	require.NoError(t, err)

	assert.Equal(t, []string{"customerID", "Contract", "tenure"}, features.Headers)
	assert.Equal(t, []int{1, 0, 0}, labels)
}

func TestSplitLabel_BadValue(t *testing.T) {
	tbl := New([]string{"x", "Churn"})
	require.NoError(t, tbl.Append([]string{"a", "yes"}))

	_, _, err := tbl.SplitLabel("Churn")
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))
}

func TestSplitLabel_MissingColumn(t *testing.T) {
	tbl := New([]string{"x"})
	require.NoError(t, tbl.Append([]string{"a"}))

	_, _, err := tbl.SplitLabel("Churn")
	require.Error(t, err)
	assert.True(t, core.IsSchemaError(err))
}
