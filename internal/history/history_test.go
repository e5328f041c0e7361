// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scandoc/pkg/types"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLedger(t)

	ok := types.Result{
		Input:      types.PDFInput("doc.pdf"),
		OutputPath: "doc_output.pdf",
		Pages:      4,
	}
	failed := types.Result{
		Input: types.PDFInput("locked.pdf"),
		Err:   fmt.Errorf("opening: %w", types.ErrPasswordProtected),
	}
	require.NoError(t, l.Record(ok))
	require.NoError(t, l.Record(failed))

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "locked.pdf", entries[0].Input)
	assert.Equal(t, "password-protected", entries[0].Status)
	assert.NotEmpty(t, entries[0].ErrorMsg)

	assert.Equal(t, "doc.pdf", entries[1].Input)
	assert.Equal(t, "converted", entries[1].Status)
	assert.Equal(t, 4, entries[1].Pages)
	assert.Equal(t, "doc_output.pdf", entries[1].Output)
	assert.False(t, entries[1].RunAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	l := openTestLedger(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, l.Record(types.Result{
			Input:      types.PDFInput(fmt.Sprintf("doc%d.pdf", i)),
			OutputPath: "out.pdf",
			Pages:      1,
		}))
	}

	entries, err := l.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, "doc4.pdf", entries[0].Input)
}

func TestSummary(t *testing.T) {
	l := openTestLedger(t)

	require.NoError(t, l.Record(types.Result{Input: types.PDFInput("a.pdf"), OutputPath: "a_output.pdf", Pages: 3}))
	require.NoError(t, l.Record(types.Result{Input: types.PDFInput("b.pdf"), OutputPath: "b_output.pdf", Pages: 7}))

	stats, err := l.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Runs)
	assert.Equal(t, 10, stats.Pages)
	assert.Equal(t, int64(500), stats.WhSaved)
}

func TestSummaryEmpty(t *testing.T) {
	l := openTestLedger(t)

	stats, err := l.Summary()
	require.NoError(t, err)
	assert.Zero(t, stats.Runs)
	assert.Zero(t, stats.Pages)
}

func TestEnergySaved(t *testing.T) {
	tests := []struct {
		pages int
		want  string
	}{
		{0, "0 Wh"},
		{10, "500 Wh"},
		{100, "5.00 kWh"},
		{30000, "1.50 MWh"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EnergySaved(tt.pages), "pages=%d", tt.pages)
	}
}
