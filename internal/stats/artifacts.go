package stats

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"genevo/internal/model"
)

const (
	configFile      = "config.json"
	generationsFile = "generations.csv"
	summaryFile     = "summary.json"
)

var generationsHeader = []string{
	"generation", "best_fitness", "mean_fitness", "min_fitness",
	"stddev_fitness", "total_fitness", "fittest_index", "fittest",
}

type RunConfig struct {
	RunID          string  `json:"run_id"`
	Target         string  `json:"target"`
	Selection      string  `json:"selection"`
	PopulationSize int     `json:"population_size"`
	GenomeLength   int     `json:"genome_length"`
	MutationRate   float64 `json:"mutation_rate"`
	Generations    int     `json:"generations"`
	Seed           int64   `json:"seed"`
	Workers        int     `json:"workers"`
}

type RunSummary struct {
	RunID            string    `json:"run_id"`
	FinalGeneration  int       `json:"final_generation"`
	BestFitness      float64   `json:"best_fitness"`
	AvgFitness       float64   `json:"avg_fitness"`
	BestGenome       string    `json:"best_genome"`
	BestByGeneration []float64 `json:"best_by_generation"`
}

type RunArtifacts struct {
	Config      RunConfig
	Generations []model.GenerationRecord
	Summary     RunSummary
}

// WriteRunArtifacts lays out <baseDir>/<run-id>/ and returns that directory.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, configFile), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeGenerations(filepath.Join(runDir, generationsFile), artifacts.Generations); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, summaryFile), artifacts.Summary); err != nil {
		return "", err
	}
	return runDir, nil
}

func ReadRunArtifacts(baseDir, runID string) (RunArtifacts, bool, error) {
	runDir := filepath.Join(baseDir, runID)
	if _, err := os.Stat(runDir); err != nil {
		if os.IsNotExist(err) {
			return RunArtifacts{}, false, nil
		}
		return RunArtifacts{}, false, err
	}

	var artifacts RunArtifacts
	if err := readJSON(filepath.Join(runDir, configFile), &artifacts.Config); err != nil {
		return RunArtifacts{}, false, err
	}
	if err := readJSON(filepath.Join(runDir, summaryFile), &artifacts.Summary); err != nil {
		return RunArtifacts{}, false, err
	}
	generations, err := readGenerations(filepath.Join(runDir, generationsFile))
	if err != nil {
		return RunArtifacts{}, false, err
	}
	artifacts.Generations = generations
	return artifacts, true, nil
}

func writeGenerations(path string, records []model.GenerationRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(generationsHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Generation),
			formatFloat(r.BestFitness),
			formatFloat(r.MeanFitness),
			formatFloat(r.MinFitness),
			formatFloat(r.StdDevFitness),
			formatFloat(r.TotalFitness),
			strconv.Itoa(r.FittestIndex),
			r.Fittest,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Sync()
}

func readGenerations(path string) ([]model.GenerationRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(generationsHeader)
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: missing header", path)
		}
		return nil, err
	}

	records := make([]model.GenerationRecord, 0, 128)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		record, err := parseGenerationRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func parseGenerationRow(row []string) (model.GenerationRecord, error) {
	var (
		r   model.GenerationRecord
		err error
	)
	if r.Generation, err = strconv.Atoi(row[0]); err != nil {
		return r, err
	}
	floatsByColumn := []*float64{&r.BestFitness, &r.MeanFitness, &r.MinFitness, &r.StdDevFitness, &r.TotalFitness}
	for i, dst := range floatsByColumn {
		if *dst, err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return r, err
		}
	}
	if r.FittestIndex, err = strconv.Atoi(row[6]); err != nil {
		return r, err
	}
	r.Fittest = row[7]
	return r, nil
}

// ExportRunArtifacts copies a written run directory under outDir.
func ExportRunArtifacts(baseDir, runID, outDir string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	src := filepath.Join(baseDir, runID)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}
	for _, file := range []string{configFile, generationsFile, summaryFile} {
		if err := copyFile(filepath.Join(src, file), filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}
	return dst, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, value any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, value)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
