package orchestrator

import (
	"math/rand"
	"sync"

	"k8s.io/klog/v2"

	svmerrors "github.com/ducminhle1904/evosvm/internal/errors"
	"github.com/ducminhle1904/evosvm/pkg/config"
	"github.com/ducminhle1904/evosvm/pkg/data"
	"github.com/ducminhle1904/evosvm/pkg/types"
)

// DefaultDatasetLoader loads datasets through cached providers, one per file
type DefaultDatasetLoader struct {
	mu        sync.Mutex
	providers map[string]*data.CachedProvider
}

// NewDefaultDatasetLoader creates a new dataset loader
func NewDefaultDatasetLoader() *DefaultDatasetLoader {
	return &DefaultDatasetLoader{providers: make(map[string]*data.CachedProvider)}
}

// LoadTrainingSet loads the configured training file
func (l *DefaultDatasetLoader) LoadTrainingSet(cfg *config.TrainingConfig) (*types.Dataset, error) {
	if cfg.Data.TrainFile == "" {
		return nil, svmerrors.NewConfigurationError("orchestrator", "load datasets", "training file is required")
	}
	return l.load(cfg, cfg.Data.TrainFile)
}

// LoadDatasets loads the training and test sets. Without a test file the training
// file is shuffled with the run seed and split by the configured ratio.
func (l *DefaultDatasetLoader) LoadDatasets(cfg *config.TrainingConfig) (*types.Dataset, *types.Dataset, error) {
	full, err := l.LoadTrainingSet(cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Data.TestFile != "" {
		test, err := l.load(cfg, cfg.Data.TestFile)
		if err != nil {
			return nil, nil, err
		}
		if test.Dimension() != full.Dimension() {
			return nil, nil, svmerrors.NewInvalidInputError("orchestrator", "load datasets",
				"test set has %d features, training set has %d", test.Dimension(), full.Dimension())
		}
		return full, test, nil
	}

	train, test, err := data.SplitByRatio(full, cfg.Data.SplitRatio, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, nil, err
	}
	klog.V(1).InfoS("Split training file", "ratio", cfg.Data.SplitRatio, "train", train.Len(), "test", test.Len())
	return train, test, nil
}

func (l *DefaultDatasetLoader) load(cfg *config.TrainingConfig, path string) (*types.Dataset, error) {
	format, err := cfg.DatasetFormat()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	provider, ok := l.providers[path]
	if !ok {
		provider = data.NewCachedProvider(data.ProviderFor(path, format))
		l.providers[path] = provider
	}
	l.mu.Unlock()

	dataset, err := provider.LoadData(path)
	if err != nil {
		return nil, err
	}
	if err := provider.ValidateData(dataset); err != nil {
		return nil, err
	}
	return dataset, nil
}
