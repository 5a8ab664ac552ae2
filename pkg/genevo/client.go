package genevo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"genevo/internal/evo"
	"genevo/internal/logging"
	"genevo/internal/model"
	"genevo/internal/monitor"
	"genevo/internal/stats"
	"genevo/internal/storage"
	"genevo/internal/strategy"
)

const (
	defaultArtifactsDir = "runs"
	defaultExportsDir   = "exports"
	defaultDBPath       = "genevo.db"

	DefaultTarget        = "hello world"
	DefaultRunPopulation = 200
	DefaultRunRate       = 0.009
	DefaultGenerations   = 400

	SelectionProportionate = "proportionate"
	SelectionTournament    = "tournament"

	createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type Options struct {
	StoreKind    string
	DBPath       string
	ArtifactsDir string
	ExportsDir   string
	Logger       *slog.Logger
}

type Client struct {
	store  storage.Store
	logger *slog.Logger

	artifactsDir string
	exportsDir   string
}

// RunRequest configures a target-string run. Zero values select defaults; a
// zero Seed seeds from the clock and the chosen seed is recorded.
type RunRequest struct {
	Target       string
	Alphabet     string
	Population   int
	MutationRate *float64
	Generations  int
	Seed         int64
	Workers      int
	Selection    string
	LogInterval  time.Duration
	// Registerer receives the run gauges when set.
	Registerer prometheus.Registerer
}

type RunSummary struct {
	RunID            string
	ArtifactsDir     string
	Seed             int64
	FinalGeneration  int
	BestFitness      float64
	AvgFitness       float64
	BestGenome       string
	BestByGeneration []float64
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID           string
	CreatedAtUTC    string
	Target          string
	Selection       string
	Seed            int64
	Population      int
	Generations     int
	FinalGeneration int
	BestFitness     float64
	BestGenome      string
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" && storeKind == storage.KindSQLite {
		dbPath = defaultDBPath
	}
	artifactsDir := opts.ArtifactsDir
	if artifactsDir == "" {
		artifactsDir = defaultArtifactsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:        store,
		logger:       logger,
		artifactsDir: artifactsDir,
		exportsDir:   exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Reset(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	return c.store.Reset(ctx)
}

func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Target == "" {
		req.Target = DefaultTarget
	}
	if req.Alphabet == "" {
		req.Alphabet = DefaultAlphabet
	}
	if req.Population == 0 {
		req.Population = DefaultRunPopulation
	}
	if req.MutationRate == nil {
		req.MutationRate = Rate(DefaultRunRate)
	}
	if req.Generations == 0 {
		req.Generations = DefaultGenerations
	}
	if req.Generations < 0 {
		return RunSummary{}, fmt.Errorf("%w: generations must be >= 0", ErrInvalidConfig)
	}
	if req.Selection == "" {
		req.Selection = SelectionProportionate
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	if err := c.store.Init(ctx); err != nil {
		return RunSummary{}, err
	}

	rng := rand.New(rand.NewSource(req.Seed))
	matingPool, err := selectionFromName(req.Selection, rng)
	if err != nil {
		return RunSummary{}, err
	}

	target := []rune(req.Target)
	fitness := strategy.TargetMatch(target)
	recorder := monitor.NewRecorder[rune](strategy.GenomeString)
	observers := evo.MultiObserver[rune]{
		recorder,
		monitor.NewLogger[rune](c.logger, req.LogInterval),
	}
	if req.Registerer != nil {
		metrics, err := monitor.NewMetrics[rune](req.Registerer)
		if err != nil {
			return RunSummary{}, fmt.Errorf("register run metrics: %w", err)
		}
		observers = append(observers, metrics)
	}

	runID := uuid.NewString()
	c.logger.Info("run starting",
		"run_id", runID,
		"target", req.Target,
		"population", req.Population,
		"mutation_rate", *req.MutationRate,
		"generations", req.Generations,
		"selection", req.Selection,
		"seed", req.Seed,
	)

	started := time.Now()
	result, err := evo.Evolve(ctx, evo.Options[rune]{
		PopulationSize:       req.Population,
		GenomeLength:         len(target),
		Gene:                 strategy.RuneGene(rng, req.Alphabet),
		MatingPool:           matingPool,
		Crossover:            strategy.MidpointCrossover[rune],
		MutationRate:         req.MutationRate,
		Mutate:               strategy.PointMutation[rune](rng),
		Fitness:              fitness,
		ShouldFinish:         strategy.GenerationLimit(req.Generations),
		OnGeneratePopulation: observers,
		Rand:                 rng,
		Workers:              req.Workers,
	})
	if err != nil {
		return RunSummary{}, err
	}

	final, err := result.Aligned(ctx, evo.FitnessOptions[rune]{Fitness: fitness, Workers: req.Workers})
	if err != nil {
		return RunSummary{}, err
	}
	best, err := evo.Stats(final.Population, final.PopulationFitness)
	if err != nil {
		return RunSummary{}, err
	}
	bestFitness := final.PopulationFitness[best.FittestIndex]
	bestGenome := strategy.GenomeString(best.Fittest.Genome)
	recorder.Complete(final.Population, final.PopulationFitness, final.Context.Generation)
	if err := recorder.Err(); err != nil {
		return RunSummary{}, err
	}
	generations := recorder.Records()

	run := model.RunRecord{
		VersionedRecord: storage.Versioned(),
		ID:              runID,
		CreatedAtUTC:    time.Now().UTC().Format(createdAtLayout),
		Target:          req.Target,
		Selection:       req.Selection,
		PopulationSize:  req.Population,
		GenomeLength:    len(target),
		MutationRate:    *req.MutationRate,
		Generations:     req.Generations,
		Seed:            req.Seed,
		Workers:         req.Workers,
		FinalGeneration: final.Context.Generation,
		BestFitness:     bestFitness,
		AvgFitness:      best.AvgFitness,
		BestGenome:      bestGenome,
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveGenerations(ctx, runID, generations); err != nil {
		return RunSummary{}, err
	}

	bestByGeneration := stats.BestByGeneration(generations)
	runDir, err := stats.WriteRunArtifacts(c.artifactsDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:          runID,
			Target:         req.Target,
			Selection:      req.Selection,
			PopulationSize: req.Population,
			GenomeLength:   len(target),
			MutationRate:   *req.MutationRate,
			Generations:    req.Generations,
			Seed:           req.Seed,
			Workers:        req.Workers,
		},
		Generations: generations,
		Summary: stats.RunSummary{
			RunID:            runID,
			FinalGeneration:  final.Context.Generation,
			BestFitness:      bestFitness,
			AvgFitness:       best.AvgFitness,
			BestGenome:       bestGenome,
			BestByGeneration: bestByGeneration,
		},
	})
	if err != nil {
		return RunSummary{}, err
	}

	c.logger.Info("run finished",
		"run_id", runID,
		"generation", final.Context.Generation,
		"best_fitness", bestFitness,
		"best_genome", bestGenome,
		"elapsed", time.Since(started),
	)

	return RunSummary{
		RunID:            runID,
		ArtifactsDir:     filepath.Clean(runDir),
		Seed:             req.Seed,
		FinalGeneration:  final.Context.Generation,
		BestFitness:      bestFitness,
		AvgFitness:       best.AvgFitness,
		BestGenome:       bestGenome,
		BestByGeneration: bestByGeneration,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}

	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if len(runs) > req.Limit {
		runs = runs[:req.Limit]
	}

	out := make([]RunItem, 0, len(runs))
	for _, r := range runs {
		out = append(out, RunItem{
			RunID:           r.ID,
			CreatedAtUTC:    r.CreatedAtUTC,
			Target:          r.Target,
			Selection:       r.Selection,
			Seed:            r.Seed,
			Population:      r.PopulationSize,
			Generations:     r.Generations,
			FinalGeneration: r.FinalGeneration,
			BestFitness:     r.BestFitness,
			BestGenome:      r.BestGenome,
		})
	}
	return out, nil
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]GenerationRecord, error) {
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, fmt.Errorf("fitness history: %w", err)
	}

	history, ok, err := c.store.GetGenerations(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return history, nil
}

func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("export: %w", err)
	}

	exportedDir, err := stats.ExportRunArtifacts(c.artifactsDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if runID == "" && !latest {
		return "", errors.New("run id or latest is required")
	}
	if err := c.store.Init(ctx); err != nil {
		return "", err
	}
	if runID != "" {
		return runID, nil
	}

	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", errors.New("no runs available")
	}
	return runs[0].ID, nil
}

func selectionFromName(name string, rng *rand.Rand) (evo.MatingPoolFunc[rune], error) {
	switch name {
	case SelectionProportionate:
		return strategy.FitnessProportionate[rune](strategy.DefaultProportionateScale), nil
	case SelectionTournament:
		return strategy.Tournament[rune](rng, strategy.DefaultTournamentSize, 0), nil
	default:
		return nil, fmt.Errorf("unsupported selection strategy: %s", name)
	}
}
