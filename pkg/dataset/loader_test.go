package dataset

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"qaeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func TestFileDatasetJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")

	records := []core.QAInput{
		{Question: "Tokyo is the capital of which country?", Answer: "Japan", Context: "Tokyo is the capital of Japan.", GroundTruth: "Japan"},
		{Question: "What is the capital of France?", Answer: "Paris", Context: "Paris is the capital of France.", GroundTruth: "Paris"},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	ch, errCh := ds.Records(context.Background())
	var got []core.QAInput
	for record := range ch {
		got = append(got, record)
	}
	for err := range errCh {
		require.NoError(t, err)
	}
	require.Len(t, got, 2)
	require.Equal(t, "Japan", got[0].Answer)
}

func TestFileDatasetJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")

	lines := `{"question":"q1","answer":"a1","context":"c1","ground_truth":"g1"}
{"question":"q2","answer":"a2","context":"c2","ground_truth":"g2","extra":{"source":"web"}}`
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	ch, errCh := ds.Records(context.Background())
	var got []core.QAInput
	for record := range ch {
		got = append(got, record)
	}
	for err := range errCh {
		require.NoError(t, err)
	}
	require.Len(t, got, 2)
	require.Equal(t, "g1", got[0].GroundTruth)
	require.Equal(t, "web", got[1].Extra["source"])
}

func TestFileDatasetSkipsBlankJSONLLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")

	lines := "{\"question\":\"q1\",\"answer\":\"a1\"}\n\n{\"question\":\"q2\",\"answer\":\"a2\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o600))

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestFileDatasetSniffsFormat(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "records.data")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"question":"q","answer":"a"}]`), 0o600))
	format, err := detectFormat(jsonPath)
	require.NoError(t, err)
	require.Equal(t, "json", format)

	jsonlPath := filepath.Join(dir, "records2.data")
	require.NoError(t, os.WriteFile(jsonlPath, []byte(`{"question":"q","answer":"a"}`), 0o600))
	format, err = detectFormat(jsonlPath)
	require.NoError(t, err)
	require.Equal(t, "jsonl", format)
}

func TestFileDatasetReportsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"question\":\"q1\",\"answer\":\"a1\"}\nnot json\n"), 0o600))

	ds := NewFileDataset(path)
	ch, errCh := ds.Records(context.Background())
	var got []core.QAInput
	for record := range ch {
		got = append(got, record)
	}
	require.Len(t, got, 1)
	require.Error(t, <-errCh)
}

func TestSliceDataset(t *testing.T) {
	ds := NewSliceDataset([]core.QAInput{{Question: "q"}}, "")
	require.Equal(t, "retry", ds.Name())

	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)

	ch, errCh := ds.Records(context.Background())
	var got []core.QAInput
	for record := range ch {
		got = append(got, record)
	}
	for err := range errCh {
		require.NoError(t, err)
	}
	require.Len(t, got, 1)
}
