package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genevo/internal/model"
)

func sampleArtifacts(runID string) RunArtifacts {
	generations := []model.GenerationRecord{
		{Generation: 0, BestFitness: 0.2, MeanFitness: 0.05, StdDevFitness: 0.04, TotalFitness: 1, Fittest: "h, llo"},
		{Generation: 1, BestFitness: 0.4, MeanFitness: 0.1, MinFitness: 0.0, TotalFitness: 2, FittestIndex: 7, Fittest: "he\"llo"},
	}
	return RunArtifacts{
		Config: RunConfig{
			RunID:          runID,
			Target:         "hello",
			Selection:      "proportionate",
			PopulationSize: 20,
			GenomeLength:   5,
			MutationRate:   0.01,
			Generations:    1,
			Seed:           3,
		},
		Generations: generations,
		Summary: RunSummary{
			RunID:            runID,
			FinalGeneration:  1,
			BestFitness:      0.4,
			AvgFitness:       0.1,
			BestGenome:       "hello",
			BestByGeneration: BestByGeneration(generations),
		},
	}
}

func TestWriteAndReadRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	artifacts := sampleArtifacts("run-123")

	runDir, err := WriteRunArtifacts(baseDir, artifacts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "run-123"), runDir)
	for _, file := range []string{configFile, generationsFile, summaryFile} {
		_, err := os.Stat(filepath.Join(runDir, file))
		require.NoError(t, err, file)
	}

	loaded, ok, err := ReadRunArtifacts(baseDir, "run-123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, artifacts, loaded)
}

func TestReadRunArtifactsMissingRun(t *testing.T) {
	_, ok, err := ReadRunArtifacts(t.TempDir(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	_, err := WriteRunArtifacts(t.TempDir(), RunArtifacts{})
	require.Error(t, err)
}

func TestExportRunArtifacts(t *testing.T) {
	baseDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "exports")
	_, err := WriteRunArtifacts(baseDir, sampleArtifacts("run-9"))
	require.NoError(t, err)

	exported, err := ExportRunArtifacts(baseDir, "run-9", outDir)
	require.NoError(t, err)

	loaded, ok, err := ReadRunArtifacts(outDir, "run-9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(outDir, "run-9"), exported)
	assert.Equal(t, "hello", loaded.Summary.BestGenome)

	_, err = ExportRunArtifacts(baseDir, "missing", outDir)
	require.Error(t, err)
}
